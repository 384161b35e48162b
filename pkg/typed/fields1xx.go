package typed

import (
	"fmt"
	"strings"

	"rusmarc/pkg/contract"
)

// 1xx 编码信息块。
const (
	NumGeneralProcessing contract.Number = 100
	NumLanguage          contract.Number = 101
	NumCountry           contract.Number = 102
	NumTextMaterials     contract.Number = 105
	NumDocumentForm      contract.Number = 106

	KindGeneralProcessing contract.Kind = "100.general_processing_data"
	KindLanguage          contract.Kind = "101.language"
	KindCountry           contract.Kind = "102.country_of_publication"
	KindTextMaterials     contract.Kind = "105.text_materials"
	KindDocumentForm      contract.Kind = "106.document_form"
)

// generalProcessingMinLen: 100 $a 至少包含到日期 2（位置 0-16）。
const generalProcessingMinLen = 17

func entries1xx() []Entry {
	return []Entry{
		{NumGeneralProcessing, KindGeneralProcessing, parseGeneralProcessing},
		{NumLanguage, KindLanguage, subfielded(func(s *subs) Language {
			return Language{
				Text: s.many('a'), Intermediate: s.many('b'), Original: s.many('c'), Summary: s.many('d'),
				Contents: s.many('e'), TitlePage: s.many('f'), MainTitle: s.many('g'), Libretto: s.many('h'),
				Accompanying: s.many('i'), Subtitles: s.many('j'),
			}
		})},
		{NumCountry, KindCountry, subfielded(func(s *subs) Country {
			return Country{Countries: s.many('a'), Localities: s.many('b'), LocalitiesISO: s.many('c'), System: s.one('2')}
		})},
		{NumTextMaterials, KindTextMaterials, parseTextMaterials},
		{NumDocumentForm, KindDocumentForm, subfielded(func(s *subs) DocumentForm {
			var df DocumentForm
			if a := s.one('a'); a != nil {
				if c := strings.Trim(*a, fillChars); c != "" {
					df.Carrier = ptr(Carrier(c))
				}
			}
			return df
		})},
	}
}

// GeneralProcessing 100 通用处理数据：$a 为定长编码串。
type GeneralProcessing struct {
	EntryDate          string                 `json:"entry_date"`                     // 0-7
	DateType           DateType               `json:"date_type"`                      // 8
	Date1              string                 `json:"date1"`                          // 9-12
	Date2              string                 `json:"date2"`                          // 13-16
	Audience           []TargetAudience       `json:"audience,omitempty"`             // 17-19
	Government         *GovernmentPublication `json:"government,omitempty"`           // 20
	ModifiedRecord     *string                `json:"modified_record,omitempty"`      // 21
	CatalogingLanguage *string                `json:"cataloging_language,omitempty"`  // 22-24
	Transliteration    *Transliteration       `json:"transliteration,omitempty"`      // 25
	CharacterSets      []CharacterSet         `json:"character_sets,omitempty"`       // 26-29
	ExtraCharacterSets []CharacterSet         `json:"extra_character_sets,omitempty"` // 30-33
	TitleScript        *TitleScript           `json:"title_script,omitempty"`         // 34-35
}

func (GeneralProcessing) FieldNumber() contract.Number { return NumGeneralProcessing }
func (GeneralProcessing) Kind() contract.Kind { return KindGeneralProcessing }

func parseGeneralProcessing(p contract.Payload) (contract.TypedField, error) {
	if err := requireSubfields(p); err != nil {
		return nil, err
	}
	a, err := maxOne(p, 'a')
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("%w: missing $a", contract.ErrCardinality)
	}
	code := []rune(*a)
	if len(code) < generalProcessingMinLen {
		return nil, fmt.Errorf("%w: $a has %d characters, need at least %d", contract.ErrFormat, len(code), generalProcessingMinLen)
	}

	g := GeneralProcessing{
		EntryDate: string(code[0:8]),
		DateType:  DateType(code[8:9]),
		Date1:     string(code[9:13]),
		Date2:     string(code[13:17]),
	}
	for _, c := range codes(code, 17, 20, 1) {
		g.Audience = append(g.Audience, TargetAudience(c))
	}
	if v, ok := position(code, 20, 21); ok {
		g.Government = ptr(GovernmentPublication(v))
	}
	if v, ok := position(code, 21, 22); ok {
		g.ModifiedRecord = &v
	}
	if v, ok := position(code, 22, 25); ok {
		g.CatalogingLanguage = &v
	}
	if v, ok := position(code, 25, 26); ok {
		g.Transliteration = ptr(Transliteration(v))
	}
	for _, c := range codes(code, 26, 30, 2) {
		g.CharacterSets = append(g.CharacterSets, CharacterSet(c))
	}
	for _, c := range codes(code, 30, 34, 2) {
		g.ExtraCharacterSets = append(g.ExtraCharacterSets, CharacterSet(c))
	}
	if v, ok := position(code, 34, 36); ok {
		g.TitleScript = ptr(TitleScript(v))
	}
	return g, nil
}

// Language 101 文献语种；各子字段均可重复。
type Language struct {
	Text         []string `json:"text,omitempty"`         // $a
	Intermediate []string `json:"intermediate,omitempty"` // $b
	Original     []string `json:"original,omitempty"`     // $c
	Summary      []string `json:"summary,omitempty"`      // $d
	Contents     []string `json:"contents,omitempty"`     // $e
	TitlePage    []string `json:"title_page,omitempty"`   // $f
	MainTitle    []string `json:"main_title,omitempty"`   // $g
	Libretto     []string `json:"libretto,omitempty"`     // $h
	Accompanying []string `json:"accompanying,omitempty"` // $i
	Subtitles    []string `json:"subtitles,omitempty"`    // $j
}

func (Language) FieldNumber() contract.Number { return NumLanguage }
func (Language) Kind() contract.Kind { return KindLanguage }

// Country 102 出版国。
type Country struct {
	Countries     []string `json:"countries,omitempty"`      // $a
	Localities    []string `json:"localities,omitempty"`     // $b
	LocalitiesISO []string `json:"localities_iso,omitempty"` // $c
	System        *string  `json:"system,omitempty"`         // $2
}

func (Country) FieldNumber() contract.Number { return NumCountry }
func (Country) Kind() contract.Kind { return KindCountry }

// TextMaterials 105 文本资料编码数据。
type TextMaterials struct {
	Illustrations []Illustration `json:"illustrations,omitempty"` // $a/0-3
	ContentForms  []ContentForm  `json:"content_forms,omitempty"` // $a/4-7
	Conference    *Indicator     `json:"conference,omitempty"`    // $a/8
	Festschrift   *Indicator     `json:"festschrift,omitempty"`   // $a/9
	Index         *Indicator     `json:"index,omitempty"`         // $a/10
	LiteraryForm  *LiteraryForm  `json:"literary_form,omitempty"` // $a/11
	Biography     *Biography     `json:"biography,omitempty"`     // $a/12
	Degree        *Degree        `json:"degree,omitempty"`        // $9
}

func (TextMaterials) FieldNumber() contract.Number { return NumTextMaterials }
func (TextMaterials) Kind() contract.Kind { return KindTextMaterials }

func parseTextMaterials(p contract.Payload) (contract.TypedField, error) {
	if err := requireSubfields(p); err != nil {
		return nil, err
	}
	a, err := maxOne(p, 'a')
	if err != nil {
		return nil, err
	}
	d, err := maxOne(p, '9')
	if err != nil {
		return nil, err
	}

	var tm TextMaterials
	if d != nil {
		if c := strings.Trim(*d, fillChars); c != "" {
			tm.Degree = ptr(Degree(c))
		}
	}
	if a == nil {
		return tm, nil
	}
	code := []rune(*a)
	for _, c := range codes(code, 0, 4, 1) {
		tm.Illustrations = append(tm.Illustrations, Illustration(c))
	}
	for _, c := range codes(code, 4, 8, 1) {
		tm.ContentForms = append(tm.ContentForms, ContentForm(c))
	}
	if v, ok := position(code, 8, 9); ok {
		tm.Conference = ptr(Indicator(v))
	}
	if v, ok := position(code, 9, 10); ok {
		tm.Festschrift = ptr(Indicator(v))
	}
	if v, ok := position(code, 10, 11); ok {
		tm.Index = ptr(Indicator(v))
	}
	if v, ok := position(code, 11, 12); ok {
		tm.LiteraryForm = ptr(LiteraryForm(v))
	}
	if v, ok := position(code, 12, 13); ok {
		tm.Biography = ptr(Biography(v))
	}
	return tm, nil
}

// DocumentForm 106 文献形式。
type DocumentForm struct {
	Carrier *Carrier `json:"carrier,omitempty"` // $a
}

func (DocumentForm) FieldNumber() contract.Number { return NumDocumentForm }
func (DocumentForm) Kind() contract.Kind { return KindDocumentForm }
