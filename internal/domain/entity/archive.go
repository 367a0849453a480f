package entity

// ArchivedImage identifica um gráfico arquivado no S3.
type ArchivedImage struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	ETag   string `json:"etag,omitempty"`
}
