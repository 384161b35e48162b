package contract

// Kind: 类型化字段的稳定标签（例如 "001.record_id"），用于按种类检索，不依赖反射。
type Kind string

// TypedField: 任意类型化字段的统一能力。每个变体都能报告来源字段号与种类标签。
type TypedField interface {
	FieldNumber() Number
	Kind() Kind
}
