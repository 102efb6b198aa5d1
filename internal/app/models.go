package app

// RawRow is a dynamic map produced by the file parsers: normalized field name
// (or raw JSON key) to parsed value. Values are strings for CSV/Excel input
// and may be numbers or lists when the source was a JSON array.
type RawRow map[string]interface{}
