package corpus

// Field names a snapshot component as it is stored in the snapshot store.
type Field string

const (
	// FieldMagnitudes holds comma-separated per-document L2 norms.
	FieldMagnitudes Field = "mag_values"
	// FieldIDF holds newline-separated inverse document frequencies.
	FieldIDF Field = "idf_values"
	// FieldVocabulary holds newline-separated vocabulary terms.
	FieldVocabulary Field = "keyword_values"
	// FieldMatrix holds the base64-encoded gzip term-weight matrix.
	FieldMatrix Field = "tf_idf_values"
	// FieldProblems names the document metadata collection.
	FieldProblems Field = "problems"
)

// ScalarFields lists the delimited text fields of a snapshot in load order.
var ScalarFields = []Field{FieldMagnitudes, FieldIDF, FieldVocabulary, FieldMatrix}

// String returns the storage name of the field.
func (f Field) String() string { return string(f) }
