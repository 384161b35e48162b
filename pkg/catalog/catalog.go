// Package catalog 从类型化记录中提取下游导入所需的目录属性。
package catalog

import (
	"strings"
	"time"

	"rusmarc/pkg/contract"
	"rusmarc/pkg/record"
	"rusmarc/pkg/typed"
)

// FromRecord 对一条原始记录完成：丢弃行级错误 -> 类型化 -> 提取属性，并统计被跳过的行与字段。
// reg 为 nil 时使用内置分派表。
func FromRecord(reg *typed.Registry, fileID contract.FileID, index int64, raw contract.Record) contract.Entry {
	tr, ferrs := typed.Parse(reg, record.Fields(raw))
	e := Extract(tr)
	e.FileID = fileID
	e.Index = index
	if len(raw) > 0 {
		e.Line = raw[0].Line
	}
	for _, it := range record.Malformed(raw) {
		e.Malformed++
		e.Errors = append(e.Errors, it.Err.Error())
	}
	for _, fe := range ferrs {
		e.Skipped++
		e.Errors = append(e.Errors, fe.Error())
	}
	return e
}

// Extract 提取属性；位置信息与统计由调用方填写。
func Extract(tr *typed.Record) contract.Entry {
	var e contract.Entry
	e.Fields = tr.Len()

	if v, ok := typed.First[typed.RecordID](tr); ok {
		e.RecordID = strings.TrimSpace(v.ID)
	}
	if v, ok := typed.First[typed.PersistentRecordID](tr); ok {
		e.PersistentID = strings.TrimSpace(v.ID)
	} else if v, ok := typed.First[typed.PersistentID](tr); ok {
		e.PersistentID = deref(v.ID)
	}
	if v, ok := typed.First[typed.Version](tr); ok {
		e.Version = v.Time().Format(time.RFC3339)
	}
	for v := range typed.Get[typed.ISBN](tr) {
		e.ISBN = appendNonEmpty(e.ISBN, v.Number)
	}
	for v := range typed.Get[typed.ISSN](tr) {
		e.ISSN = appendNonEmpty(e.ISSN, v.Number)
	}
	if v, ok := typed.First[typed.Title](tr); ok {
		e.Title = deref(v.MainTitle)
		e.Responsibility = deref(v.FirstResponsibility)
	}
	for v := range typed.Get[typed.Language](tr) {
		e.Languages = append(e.Languages, v.Text...)
	}
	if v, ok := typed.First[typed.Country](tr); ok {
		e.Country = first(v.Countries)
	}
	if v, ok := typed.First[typed.Publication](tr); ok {
		e.Place = first(v.Places)
		e.Publisher = first(v.Publishers)
		e.Date = first(v.Dates)
	}
	if e.Date == "" {
		if v, ok := typed.First[typed.GeneralProcessing](tr); ok {
			e.Date = strings.Trim(v.Date1, "# |")
		}
	}
	if v, ok := typed.First[typed.PhysicalDescription](tr); ok {
		e.Extent = first(v.Extent)
	}
	return e
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func first(ss []string) string {
	if len(ss) == 0 {
		return ""
	}
	return strings.TrimSpace(ss[0])
}

func appendNonEmpty(dst []string, s *string) []string {
	if v := deref(s); v != "" {
		return append(dst, v)
	}
	return dst
}
