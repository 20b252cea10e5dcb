// Package publish uploads rendered pages to S3-compatible object storage.
//
// Example usage:
//
//	client, err := publish.NewS3Client(publish.Options{Region: "us-east-1"})
//	p := publish.NewS3Publisher(client, publish.Options{Bucket: "site", Prefix: "previews/"})
//	key, err := p.Publish(ctx, "list", html)
package publish
