package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Zed-Kryp/BlogSphere/internal/model"
)

type Config struct {
	ServerPort string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	// DynamoEndpoint overrides the regional endpoint (dynamodb-local).
	DynamoEndpoint string

	S3Bucket string
	// S3PublicURL is the base under which uploaded objects are publicly
	// reachable. Defaults to the bucket's virtual-hosted S3 URL.
	S3PublicURL string

	RedisURL string

	JWTSecret string
	// AccessTokenMaxAge is the login token lifetime in seconds.
	AccessTokenMaxAge int

	ResetTokenTTL time.Duration

	// Tables is the full table catalog with any env overrides applied.
	Tables []model.TableSpec
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}

	bucket := os.Getenv("S3_BUCKET_NAME")
	if bucket == "" {
		bucket = "blogsphere-20"
	}
	publicURL := os.Getenv("S3_PUBLIC_URL")
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.amazonaws.com", bucket)
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	accessTokenMaxAge, err := strconv.Atoi(os.Getenv("ACCESS_TOKEN_MAX_AGE"))
	if err != nil || accessTokenMaxAge <= 0 {
		accessTokenMaxAge = 900
	}

	resetTokenMinutes, err := strconv.Atoi(os.Getenv("RESET_TOKEN_TTL_MINUTES"))
	if err != nil || resetTokenMinutes <= 0 {
		resetTokenMinutes = 30
	}

	tables := model.DefaultTables()
	for i := range tables {
		if override := os.Getenv(tables[i].EnvVar); override != "" {
			tables[i].Name = override
		}
	}

	return &Config{
		ServerPort: serverPort,

		AWSRegion:          region,
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		DynamoEndpoint:     os.Getenv("DYNAMODB_ENDPOINT"),

		S3Bucket:    bucket,
		S3PublicURL: publicURL,

		RedisURL: redisURL,

		JWTSecret:         os.Getenv("JWT_SECRET"),
		AccessTokenMaxAge: accessTokenMaxAge,

		ResetTokenTTL: time.Duration(resetTokenMinutes) * time.Minute,

		Tables: tables,
	}, nil
}

// TableSpec returns the catalog entry for a resource.
func (c *Config) TableSpec(resource string) (model.TableSpec, error) {
	for _, spec := range c.Tables {
		if spec.Resource == resource {
			return spec, nil
		}
	}
	return model.TableSpec{}, fmt.Errorf("no table spec for resource %q", resource)
}
