// Package dynamo provides a DynamoDB implementation of the blobstore.Store
// interface. Each document is a single item holding the raw bytes, so
// documents are bounded by the 400KB DynamoDB item limit.
//
// Table schema:
//   - Partition key: key (string)
//   - Attribute: body (binary)
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name notesync-documents \
//	  --attribute-definitions AttributeName=key,AttributeType=S \
//	  --key-schema AttributeName=key,KeyType=HASH \
//	  --billing-mode PAY_PER_REQUEST
package dynamo
