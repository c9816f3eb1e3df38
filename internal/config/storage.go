package config

type StorageConfig struct {
	Provider  string `yaml:"provider"` // s3, gcs, local
	S3Region  string `yaml:"s3_region"`
	S3Bucket  string `yaml:"s3_bucket"`
	CDNDomain string `yaml:"cdn_domain"`
	GCSBucket string `yaml:"gcs_bucket"`
	LocalDir  string `yaml:"local_dir"`
	LocalURL  string `yaml:"local_url"`
}

func loadStorageConfig() *StorageConfig {
	return &StorageConfig{
		Provider:  getEnv("STORAGE_PROVIDER", "local"),
		S3Region:  getEnv("STORAGE_S3_REGION", "us-east-1"),
		S3Bucket:  getEnv("STORAGE_S3_BUCKET", ""),
		CDNDomain: getEnv("STORAGE_CDN_DOMAIN", ""),
		GCSBucket: getEnv("STORAGE_GCS_BUCKET", ""),
		LocalDir:  getEnv("STORAGE_LOCAL_DIR", "./uploads"),
		LocalURL:  getEnv("STORAGE_LOCAL_URL", "http://localhost:8080/uploads"),
	}
}
