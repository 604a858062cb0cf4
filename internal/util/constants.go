package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const MimePNG = "image/png"

// 签名图片上限（解码后字节数）
const MaxSignatureBytes = 512 * 1024

const (
	ContextUserKey      = "user"
	ContextApplicantKey = "applicant"
	ContextRequestIDKey = "requestId"
)
