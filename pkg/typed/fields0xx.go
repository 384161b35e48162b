package typed

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"rusmarc/pkg/contract"
)

// 0xx 标识块的字段号与 Kind。
const (
	NumRecordID           contract.Number = 1
	NumPersistentRecordID contract.Number = 3
	NumVersion            contract.Number = 5
	NumISBN               contract.Number = 10
	NumISSN               contract.Number = 11
	NumFingerprint        contract.Number = 12
	NumISMN               contract.Number = 13
	NumArticleID          contract.Number = 14
	NumISRN               contract.Number = 15
	NumISRC               contract.Number = 16
	NumOtherStandardID    contract.Number = 17
	NumNationalBiblioNum  contract.Number = 20
	NumStateRegistration  contract.Number = 21
	NumGovPublication     contract.Number = 22
	NumDocumentNumber     contract.Number = 29
	NumPersistentID       contract.Number = 33
	NumOtherSystemNumber  contract.Number = 35
	NumMusicalIncipit     contract.Number = 36
	NumPatentApplication  contract.Number = 39
	NumPublisherNumber    contract.Number = 71
	NumEAN                contract.Number = 73
	NumPublisherNumbers   contract.Number = 79

	KindRecordID           contract.Kind = "001.record_id"
	KindPersistentRecordID contract.Kind = "003.persistent_record_id"
	KindVersion            contract.Kind = "005.version"
	KindISBN               contract.Kind = "010.isbn"
	KindISSN               contract.Kind = "011.issn"
	KindFingerprint        contract.Kind = "012.fingerprint"
	KindISMN               contract.Kind = "013.ismn"
	KindArticleID          contract.Kind = "014.article_id"
	KindISRN               contract.Kind = "015.isrn"
	KindISRC               contract.Kind = "016.isrc"
	KindOtherStandardID    contract.Kind = "017.other_standard_id"
	KindNationalBiblioNum  contract.Kind = "020.national_bibliography_number"
	KindStateRegistration  contract.Kind = "021.state_registration_number"
	KindGovPublication     contract.Kind = "022.government_publication_number"
	KindDocumentNumber     contract.Kind = "029.document_number"
	KindPersistentID       contract.Kind = "033.persistent_id"
	KindOtherSystemNumber  contract.Kind = "035.other_system_number"
	KindMusicalIncipit     contract.Kind = "036.musical_incipit"
	KindPatentApplication  contract.Kind = "039.patent_application_number"
	KindPublisherNumber    contract.Kind = "071.publisher_number"
	KindEAN                contract.Kind = "073.ean"
	KindPublisherNumbers   contract.Kind = "079.publisher_numbers"
)

func entries0xx() []Entry {
	return []Entry{
		{NumRecordID, KindRecordID, textual(func(s string) RecordID { return RecordID{ID: s} })},
		{NumPersistentRecordID, KindPersistentRecordID, textual(func(s string) PersistentRecordID { return PersistentRecordID{ID: s} })},
		{NumVersion, KindVersion, parseVersion},
		{NumISBN, KindISBN, subfielded(func(s *subs) ISBN { return ISBN{standardNumber(s, true)} })},
		{NumISSN, KindISSN, subfielded(parseISSN)},
		{NumFingerprint, KindFingerprint, subfielded(func(s *subs) Fingerprint {
			return Fingerprint{Value: s.one('a'), SystemCode: s.one('2'), Institution: s.one('5'), InventoryNumber: s.one('9')}
		})},
		{NumISMN, KindISMN, subfielded(func(s *subs) ISMN { return ISMN{standardNumber(s, false)} })},
		{NumArticleID, KindArticleID, subfielded(func(s *subs) ArticleID {
			return ArticleID{ID: s.one('a'), Erroneous: s.many('z'), SystemCode: s.one('2')}
		})},
		{NumISRN, KindISRN, subfielded(func(s *subs) ISRN { return ISRN{standardNumber(s, false)} })},
		{NumISRC, KindISRC, subfielded(func(s *subs) ISRC { return ISRC{standardNumber(s, false)} })},
		{NumOtherStandardID, KindOtherStandardID, subfielded(func(s *subs) OtherStandardID {
			return OtherStandardID{StandardNumber: standardNumber(s, false), Source: s.one('2')}
		})},
		{NumNationalBiblioNum, KindNationalBiblioNum, subfielded(func(s *subs) NationalBibliographyNumber {
			return NationalBibliographyNumber{AssignedNumber: assignedNumber(s), MainTitle: s.one('9')}
		})},
		{NumStateRegistration, KindStateRegistration, subfielded(func(s *subs) StateRegistrationNumber {
			return StateRegistrationNumber{AssignedNumber: assignedNumber(s), SheetNumber: s.one('9')}
		})},
		{NumGovPublication, KindGovPublication, subfielded(func(s *subs) GovernmentPublicationNumber {
			return GovernmentPublicationNumber{assignedNumber(s)}
		})},
		{NumDocumentNumber, KindDocumentNumber, subfielded(func(s *subs) DocumentNumber {
			return DocumentNumber{
				Country: s.one('a'), Numbers: s.many('b'), Type: s.one('c'),
				Classification: s.many('d'), Organization: s.one('f'),
			}
		})},
		{NumPersistentID, KindPersistentID, subfielded(func(s *subs) PersistentID { return PersistentID{systemNumber(s)} })},
		{NumOtherSystemNumber, KindOtherSystemNumber, subfielded(func(s *subs) OtherSystemNumber { return OtherSystemNumber{systemNumber(s)} })},
		{NumMusicalIncipit, KindMusicalIncipit, subfielded(parseMusicalIncipit)},
		{NumPatentApplication, KindPatentApplication, subfielded(func(s *subs) PatentApplicationNumber {
			return PatentApplicationNumber{Country: s.one('a'), Number: s.one('b'), SubmissionDate: s.one('c')}
		})},
		{NumPublisherNumber, KindPublisherNumber, subfielded(func(s *subs) PublisherNumber {
			return PublisherNumber{
				Number: s.one('a'), Source: s.one('b'), Qualification: s.one('c'),
				Price: s.one('d'), Erroneous: s.many('z'),
			}
		})},
		{NumEAN, KindEAN, subfielded(func(s *subs) EAN {
			return EAN{
				Number: s.one('a'), Qualification: s.one('b'), AdditionalCodes: s.one('c'),
				Price: s.one('d'), Erroneous: s.many('z'), Circulation: s.many('9'),
			}
		})},
		{NumPublisherNumbers, KindPublisherNumbers, subfielded(func(s *subs) PublisherNumbers {
			return PublisherNumbers{Number: s.one('a'), Source: s.one('b'), Price: s.one('d'), Erroneous: s.many('z')}
		})},
	}
}

// RecordID 001 记录标识符。
type RecordID struct {
	ID string `json:"id"`
}

func (RecordID) FieldNumber() contract.Number { return NumRecordID }
func (RecordID) Kind() contract.Kind { return KindRecordID }

// PersistentRecordID 003 永久记录标识符。
type PersistentRecordID struct {
	ID string `json:"id"`
}

func (PersistentRecordID) FieldNumber() contract.Number { return NumPersistentRecordID }
func (PersistentRecordID) Kind() contract.Kind { return KindPersistentRecordID }

// Version 005 版本标识：yyyymmddHHMMSS[.T]。
// T 的含义未见文档，按不透明数值保留；没有 '.' 时 HasT=false。
type Version struct {
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Day    int    `json:"day"`
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
	Second int    `json:"second"`
	T      uint32 `json:"t"`
	HasT   bool   `json:"has_t"`
}

func (Version) FieldNumber() contract.Number { return NumVersion }
func (Version) Kind() contract.Kind { return KindVersion }

// Time 返回对应的 UTC 时间。
func (v Version) Time() time.Time {
	return time.Date(v.Year, time.Month(v.Month), v.Day, v.Hour, v.Minute, v.Second, 0, time.UTC)
}

// Unix 返回 Unix 秒。
func (v Version) Unix() int64 { return v.Time().Unix() }

var versionUnits = []struct {
	name  string
	width int
}{
	{"year", 4}, {"month", 2}, {"day", 2}, {"hour", 2}, {"minute", 2}, {"second", 2},
}

// ParseVersion 解析 005 微格式。
func ParseVersion(text string) (Version, error) {
	text = strings.TrimSpace(text)
	dot := -1
	for i, r := range text {
		switch {
		case r >= '0' && r <= '9':
		case r == '.':
			if dot >= 0 {
				return Version{}, fmt.Errorf("%w: more than one '.' in %q", contract.ErrFormat, text)
			}
			dot = i
		default:
			return Version{}, fmt.Errorf("%w: unexpected %q in %q", contract.ErrFormat, r, text)
		}
	}
	digits, frac := text, ""
	if dot >= 0 {
		digits, frac = text[:dot], text[dot+1:]
	}

	vals := make([]int, len(versionUnits))
	rest := digits
	for i, u := range versionUnits {
		if len(rest) < u.width {
			return Version{}, fmt.Errorf("%w: not enough digits for %s in %q", contract.ErrFormat, u.name, text)
		}
		vals[i], _ = strconv.Atoi(rest[:u.width])
		rest = rest[u.width:]
	}
	if rest != "" {
		return Version{}, fmt.Errorf("%w: %d extra digits in %q", contract.ErrFormat, len(rest), text)
	}

	v := Version{Year: vals[0], Month: vals[1], Day: vals[2], Hour: vals[3], Minute: vals[4], Second: vals[5]}
	if dot >= 0 {
		if frac == "" {
			return Version{}, fmt.Errorf("%w: missing T after '.' in %q", contract.ErrFormat, text)
		}
		t, err := strconv.ParseUint(frac, 10, 32)
		if err != nil {
			return Version{}, fmt.Errorf("%w: T out of range in %q", contract.ErrFormat, text)
		}
		v.T, v.HasT = uint32(t), true
	}
	if err := v.validate(); err != nil {
		return Version{}, fmt.Errorf("%w: %v in %q", contract.ErrFormat, err, text)
	}
	return v, nil
}

func (v Version) validate() error {
	switch {
	case v.Month < 1 || v.Month > 12:
		return fmt.Errorf("month %d", v.Month)
	case v.Day < 1 || v.Day > daysIn(v.Year, v.Month):
		return fmt.Errorf("day %d", v.Day)
	case v.Hour > 23:
		return fmt.Errorf("hour %d", v.Hour)
	case v.Minute > 59:
		return fmt.Errorf("minute %d", v.Minute)
	case v.Second > 59:
		return fmt.Errorf("second %d", v.Second)
	}
	return nil
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func parseVersion(p contract.Payload) (contract.TypedField, error) {
	text, err := fullLine(p)
	if err != nil {
		return nil, err
	}
	v, err := ParseVersion(text)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// StandardNumber 为 010/013/015/016/017 共用的子字段布局。
type StandardNumber struct {
	Number         *string  `json:"number,omitempty"`         // $a
	Qualifications []string `json:"qualifications,omitempty"` // $b
	Price          *string  `json:"price,omitempty"`          // $d
	Erroneous      []string `json:"erroneous,omitempty"`      // $z (R)
	Circulation    []string `json:"circulation,omitempty"`    // $9 (R)
}

// standardNumber 读取公共布局；repeatableB 表示 $b 可重复（仅 ISBN）。
func standardNumber(s *subs, repeatableB bool) StandardNumber {
	sn := StandardNumber{Number: s.one('a'), Price: s.one('d'), Erroneous: s.many('z'), Circulation: s.many('9')}
	if repeatableB {
		sn.Qualifications = s.many('b')
	} else if b := s.one('b'); b != nil {
		sn.Qualifications = []string{*b}
	}
	return sn
}

// ISBN 010。
type ISBN struct{ StandardNumber }

func (ISBN) FieldNumber() contract.Number { return NumISBN }
func (ISBN) Kind() contract.Kind { return KindISBN }

// ISSN 011。
type ISSN struct {
	Number           *string  `json:"number,omitempty"`            // $a
	Qualification    *string  `json:"qualification,omitempty"`     // $b
	Prices           []string `json:"prices,omitempty"`            // $d (R)
	Linking          *string  `json:"linking,omitempty"`           // $f ISSN-L
	CancelledLinking []string `json:"cancelled_linking,omitempty"` // $g (R)
	Cancelled        []string `json:"cancelled,omitempty"`         // $y (R)
	Erroneous        []string `json:"erroneous,omitempty"`         // $z (R)
	Circulation      []string `json:"circulation,omitempty"`       // $9 (R)
}

func (ISSN) FieldNumber() contract.Number { return NumISSN }
func (ISSN) Kind() contract.Kind { return KindISSN }

func parseISSN(s *subs) ISSN {
	return ISSN{
		Number: s.one('a'), Qualification: s.one('b'), Prices: s.many('d'), Linking: s.one('f'),
		CancelledLinking: s.many('g'), Cancelled: s.many('y'), Erroneous: s.many('z'), Circulation: s.many('9'),
	}
}

// Fingerprint 012。
type Fingerprint struct {
	Value           *string `json:"value,omitempty"`
	SystemCode      *string `json:"system_code,omitempty"`
	Institution     *string `json:"institution,omitempty"`
	InventoryNumber *string `json:"inventory_number,omitempty"`
}

func (Fingerprint) FieldNumber() contract.Number { return NumFingerprint }
func (Fingerprint) Kind() contract.Kind { return KindFingerprint }

// ISMN 013。
type ISMN struct{ StandardNumber }

func (ISMN) FieldNumber() contract.Number { return NumISMN }
func (ISMN) Kind() contract.Kind { return KindISMN }

// ArticleID 014。
type ArticleID struct {
	ID         *string  `json:"id,omitempty"`
	Erroneous  []string `json:"erroneous,omitempty"`
	SystemCode *string  `json:"system_code,omitempty"`
}

func (ArticleID) FieldNumber() contract.Number { return NumArticleID }
func (ArticleID) Kind() contract.Kind { return KindArticleID }

// ISRN 015。
type ISRN struct{ StandardNumber }

func (ISRN) FieldNumber() contract.Number { return NumISRN }
func (ISRN) Kind() contract.Kind { return KindISRN }

// ISRC 016。
type ISRC struct{ StandardNumber }

func (ISRC) FieldNumber() contract.Number { return NumISRC }
func (ISRC) Kind() contract.Kind { return KindISRC }

// OtherStandardID 017。
type OtherStandardID struct {
	StandardNumber
	Source *string `json:"source,omitempty"` // $2
}

func (OtherStandardID) FieldNumber() contract.Number { return NumOtherStandardID }
func (OtherStandardID) Kind() contract.Kind { return KindOtherStandardID }

// AssignedNumber 为 020/021/022 共用布局：国家代码 + 号码。
type AssignedNumber struct {
	Country   *string  `json:"country,omitempty"`   // $a
	Number    *string  `json:"number,omitempty"`    // $b
	Erroneous []string `json:"erroneous,omitempty"` // $z (R)
}

func assignedNumber(s *subs) AssignedNumber {
	return AssignedNumber{Country: s.one('a'), Number: s.one('b'), Erroneous: s.many('z')}
}

// NationalBibliographyNumber 020。
type NationalBibliographyNumber struct {
	AssignedNumber
	MainTitle *string `json:"main_title,omitempty"` // $9
}

func (NationalBibliographyNumber) FieldNumber() contract.Number { return NumNationalBiblioNum }
func (NationalBibliographyNumber) Kind() contract.Kind { return KindNationalBiblioNum }

// StateRegistrationNumber 021。
type StateRegistrationNumber struct {
	AssignedNumber
	SheetNumber *string `json:"sheet_number,omitempty"` // $9
}

func (StateRegistrationNumber) FieldNumber() contract.Number { return NumStateRegistration }
func (StateRegistrationNumber) Kind() contract.Kind { return KindStateRegistration }

// GovernmentPublicationNumber 022。
type GovernmentPublicationNumber struct{ AssignedNumber }

func (GovernmentPublicationNumber) FieldNumber() contract.Number { return NumGovPublication }
func (GovernmentPublicationNumber) Kind() contract.Kind { return KindGovPublication }

// DocumentNumber 029。
type DocumentNumber struct {
	Country        *string  `json:"country,omitempty"`
	Numbers        []string `json:"numbers,omitempty"`
	Type           *string  `json:"type,omitempty"`
	Classification []string `json:"classification,omitempty"`
	Organization   *string  `json:"organization,omitempty"`
}

func (DocumentNumber) FieldNumber() contract.Number { return NumDocumentNumber }
func (DocumentNumber) Kind() contract.Kind { return KindDocumentNumber }

// SystemNumber 为 033/035 共用布局。
type SystemNumber struct {
	ID        *string  `json:"id,omitempty"`        // $a
	Cancelled []string `json:"cancelled,omitempty"` // $z (R)
}

func systemNumber(s *subs) SystemNumber {
	return SystemNumber{ID: s.one('a'), Cancelled: s.many('z')}
}

// PersistentID 033。
type PersistentID struct{ SystemNumber }

func (PersistentID) FieldNumber() contract.Number { return NumPersistentID }
func (PersistentID) Kind() contract.Kind { return KindPersistentID }

// OtherSystemNumber 035。
type OtherSystemNumber struct{ SystemNumber }

func (OtherSystemNumber) FieldNumber() contract.Number { return NumOtherSystemNumber }
func (OtherSystemNumber) Kind() contract.Kind { return KindOtherSystemNumber }

// MusicalIncipit 036。
type MusicalIncipit struct {
	WorkNumber     *string  `json:"work_number,omitempty"`
	PartNumber     *string  `json:"part_number,omitempty"`
	IncipitNumber  *string  `json:"incipit_number,omitempty"`
	Voice          *string  `json:"voice,omitempty"`
	Role           *string  `json:"role,omitempty"`
	PartTitles     []string `json:"part_titles,omitempty"`
	Tonality       *string  `json:"tonality,omitempty"`
	Clef           *string  `json:"clef,omitempty"`
	KeySignature   *string  `json:"key_signature,omitempty"`
	TimeSignature  *string  `json:"time_signature,omitempty"`
	Notation       *string  `json:"notation,omitempty"`
	Comments       []string `json:"comments,omitempty"`
	CodedNote      *string  `json:"coded_note,omitempty"`
	TextIncipits   []string `json:"text_incipits,omitempty"`
	URIs           []string `json:"uris,omitempty"`
	TextLanguages  []string `json:"text_languages,omitempty"`
	NotationSystem *string  `json:"notation_system,omitempty"`
}

func (MusicalIncipit) FieldNumber() contract.Number { return NumMusicalIncipit }
func (MusicalIncipit) Kind() contract.Kind { return KindMusicalIncipit }

func parseMusicalIncipit(s *subs) MusicalIncipit {
	return MusicalIncipit{
		WorkNumber: s.one('a'), PartNumber: s.one('b'), IncipitNumber: s.one('c'),
		Voice: s.one('d'), Role: s.one('e'), PartTitles: s.many('f'), Tonality: s.one('g'),
		Clef: s.one('m'), KeySignature: s.one('n'), TimeSignature: s.one('o'), Notation: s.one('p'),
		Comments: s.many('q'), CodedNote: s.one('r'), TextIncipits: s.many('t'), URIs: s.many('u'),
		TextLanguages: s.many('z'), NotationSystem: s.one('2'),
	}
}

// PatentApplicationNumber 039。
type PatentApplicationNumber struct {
	Country        *string `json:"country,omitempty"`
	Number         *string `json:"number,omitempty"`
	SubmissionDate *string `json:"submission_date,omitempty"`
}

func (PatentApplicationNumber) FieldNumber() contract.Number { return NumPatentApplication }
func (PatentApplicationNumber) Kind() contract.Kind { return KindPatentApplication }

// PublisherNumber 071。
type PublisherNumber struct {
	Number        *string  `json:"number,omitempty"`
	Source        *string  `json:"source,omitempty"`
	Qualification *string  `json:"qualification,omitempty"`
	Price         *string  `json:"price,omitempty"`
	Erroneous     []string `json:"erroneous,omitempty"`
}

func (PublisherNumber) FieldNumber() contract.Number { return NumPublisherNumber }
func (PublisherNumber) Kind() contract.Kind { return KindPublisherNumber }

// EAN 073。
type EAN struct {
	Number          *string  `json:"number,omitempty"`
	Qualification   *string  `json:"qualification,omitempty"`
	AdditionalCodes *string  `json:"additional_codes,omitempty"`
	Price           *string  `json:"price,omitempty"`
	Erroneous       []string `json:"erroneous,omitempty"`
	Circulation     []string `json:"circulation,omitempty"`
}

func (EAN) FieldNumber() contract.Number { return NumEAN }
func (EAN) Kind() contract.Kind { return KindEAN }

// PublisherNumbers 079（已停用，仅为读取旧数据保留）。
type PublisherNumbers struct {
	Number    *string  `json:"number,omitempty"`
	Source    *string  `json:"source,omitempty"`
	Price     *string  `json:"price,omitempty"`
	Erroneous []string `json:"erroneous,omitempty"`
}

func (PublisherNumbers) FieldNumber() contract.Number { return NumPublisherNumbers }
func (PublisherNumbers) Kind() contract.Kind { return KindPublisherNumbers }
