// s3check is an operational smoke test for the presigning setup: it mints
// authorizations against a real bucket and can push a canary object through
// the bucket to verify the end-to-end path before a deployment goes live.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/objstore-io/presigned-access/pkg/presign"
	s3signer "github.com/objstore-io/presigned-access/pkg/presign/storage/s3"
)

func main() {
	region := flag.String("region", "us-east-1", "AWS region")
	bucket := flag.String("bucket", "", "S3 bucket name")
	accessKey := flag.String("access-key", "", "AWS access key ID")
	secretKey := flag.String("secret-key", "", "AWS secret access key")
	endpoint := flag.String("endpoint", "", "Custom S3 endpoint (for MinIO, etc.)")
	usePathStyle := flag.Bool("use-path-style", false, "Use path-style addressing")
	kmsKeyID := flag.String("kms-key-id", "", "KMS key ID to require for uploads")
	expiry := flag.Int("expiry", 300, "Authorization lifetime in seconds")

	command := flag.String("command", "help", "Command to execute: upload-auth, download-auth, canary, help")
	objectKey := flag.String("key", "", "Object key for download-auth")
	filename := flag.String("filename", "canary.txt", "Filename for upload-auth")

	useMinio := flag.Bool("use-minio", false, "Use MinIO defaults (sets endpoint, path-style, etc.)")
	minioEndpoint := flag.String("minio-endpoint", "http://localhost:9000", "MinIO server endpoint")

	flag.Parse()

	if *useMinio {
		*endpoint = *minioEndpoint
		*usePathStyle = true
		if *accessKey == "" {
			*accessKey = "minioadmin"
		}
		if *secretKey == "" {
			*secretKey = "minioadmin"
		}
	}

	if *accessKey == "" {
		*accessKey = os.Getenv("AWS_ACCESS_KEY_ID")
	}
	if *secretKey == "" {
		*secretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	}

	if *command == "help" || *command == "" {
		printHelp()
		return
	}

	if *bucket == "" {
		log.Fatal("Bucket name is required")
	}

	signerCfg := s3signer.Config{
		Region:          *region,
		Bucket:          *bucket,
		AccessKeyID:     *accessKey,
		SecretAccessKey: *secretKey,
		Endpoint:        *endpoint,
		UsePathStyle:    *usePathStyle,
	}

	signer, err := s3signer.New(signerCfg)
	if err != nil {
		log.Fatalf("Failed to initialize S3 signer: %v", err)
	}

	svc, err := presign.New(
		presign.WithSigner(signer),
		presign.WithExpiry(time.Duration(*expiry)*time.Second),
		presign.WithKMSKey(*kmsKeyID),
	)
	if err != nil {
		log.Fatalf("Failed to create service: %v", err)
	}

	ctx := context.Background()

	switch *command {
	case "upload-auth":
		auth, err := svc.AuthorizeUpload(ctx, presign.UploadRequest{Filename: *filename})
		if err != nil {
			log.Fatalf("Failed to authorize upload: %v", err)
		}
		printJSON(auth)

	case "download-auth":
		if *objectKey == "" {
			log.Fatal("Object key is required for download-auth")
		}
		auth, err := svc.AuthorizeDownload(ctx, presign.DownloadRequest{ObjectKey: *objectKey})
		if err != nil {
			log.Fatalf("Failed to authorize download: %v", err)
		}
		printJSON(auth)

	case "canary":
		client, err := s3signer.NewClient(signerCfg)
		if err != nil {
			log.Fatalf("Failed to build S3 client: %v", err)
		}

		key := fmt.Sprintf("s3check/canary-%d.txt", time.Now().UTC().Unix())
		uploader := manager.NewUploader(client)
		_, err = uploader.Upload(ctx, &awss3.PutObjectInput{
			Bucket: aws.String(*bucket),
			Key:    aws.String(key),
			Body:   bytes.NewReader([]byte("presigned-access canary\n")),
		})
		if err != nil {
			log.Fatalf("Canary upload failed: %v", err)
		}
		fmt.Printf("Canary object uploaded: %s\n", key)

		auth, err := svc.AuthorizeDownload(ctx, presign.DownloadRequest{ObjectKey: key})
		if err != nil {
			log.Fatalf("Failed to authorize canary download: %v", err)
		}
		printJSON(auth)

	default:
		fmt.Printf("Unknown command: %s\n\n", *command)
		printHelp()
		os.Exit(1)
	}
}

func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	fmt.Println(string(out))
}

func printHelp() {
	fmt.Println("s3check - smoke test for the presigned-access setup")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  upload-auth    Mint an upload authorization for -filename")
	fmt.Println("  download-auth  Mint a download authorization for -key")
	fmt.Println("  canary         Upload a canary object and mint its download authorization")
	fmt.Println()
	fmt.Println("Example:")
	fmt.Println("  s3check -command canary -bucket my-bucket -use-minio")
}
