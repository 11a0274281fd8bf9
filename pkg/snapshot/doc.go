// Package snapshot writes rendered HTML to stdout, a directory or an S3
// bucket.
//
// Open parses a target string:
//
//	-                     stdout
//	./out                 files under ./out
//	s3://bucket/prefix    objects under prefix in bucket
//
// Every sink stores one document per name, as "<name>.html".
package snapshot
