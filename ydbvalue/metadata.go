package ydbvalue

// Well-known metadata keys attached to exported Arrow schemas.
const (
	MetaType      = "ydb.type"      // field: YQL type name of the column
	MetaTruncated = "ydb.truncated" // schema: "true" when the server truncated the result set
	MetaCodec     = "ydb.codec"     // schema: codec identifier and version

	CodecVersion = "ydbvalue/1"
)
