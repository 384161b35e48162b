package contract

// Entry: 一条记录提取后的目录条目（下游导入/展示使用的最小属性集合）。
type Entry struct {
	FileID FileID `json:"file_id"`
	// Index: 记录在输入文件中的序号（0 起）。
	Index int64 `json:"index"`
	// Line: 记录首个非空行的物理行号。
	Line int `json:"line"`

	RecordID       string   `json:"record_id,omitempty"`
	PersistentID   string   `json:"persistent_id,omitempty"`
	Version        string   `json:"version,omitempty"`
	ISBN           []string `json:"isbn,omitempty"`
	ISSN           []string `json:"issn,omitempty"`
	Title          string   `json:"title,omitempty"`
	Responsibility string   `json:"responsibility,omitempty"`
	Languages      []string `json:"languages,omitempty"`
	Country        string   `json:"country,omitempty"`
	Place          string   `json:"place,omitempty"`
	Publisher      string   `json:"publisher,omitempty"`
	Date           string   `json:"date,omitempty"`
	Extent         string   `json:"extent,omitempty"`

	// Fields: 成功类型化的字段数。
	Fields int `json:"fields"`
	// Malformed: 分词失败的行数。
	Malformed int `json:"malformed"`
	// Skipped: 无解析器或解析失败而被跳过的字段数。
	Skipped int `json:"skipped"`
	// Errors: 行级与字段级错误消息（按出现顺序）。
	Errors []string `json:"errors,omitempty"`
}
