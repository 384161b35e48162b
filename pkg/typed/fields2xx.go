package typed

import "rusmarc/pkg/contract"

// 2xx 著录信息块。
const (
	NumTitle               contract.Number = 200
	NumPublication         contract.Number = 210
	NumPhysicalDescription contract.Number = 215

	KindTitle               contract.Kind = "200.title_statement"
	KindPublication         contract.Kind = "210.publication"
	KindPhysicalDescription contract.Kind = "215.physical_description"
)

func entries2xx() []Entry {
	return []Entry{
		{NumTitle, KindTitle, subfielded(parseTitle)},
		{NumPublication, KindPublication, subfielded(func(s *subs) Publication {
			return Publication{
				Places: s.many('a'), Addresses: s.many('b'), Publishers: s.many('c'), Dates: s.many('d'),
				ManufacturePlaces: s.many('e'), ManufactureAddresses: s.many('f'),
				Manufacturers: s.many('g'), ManufactureDates: s.many('h'),
			}
		})},
		{NumPhysicalDescription, KindPhysicalDescription, subfielded(func(s *subs) PhysicalDescription {
			return PhysicalDescription{
				Extent: s.many('a'), OtherDetails: s.one('c'), Dimensions: s.many('d'), Accompanying: s.many('e'),
			}
		})},
	}
}

// Title 200 题名与责任说明。
// 源数据用重复标记表示折行，因此每个标记的全部出现按序拼接为一个值。
type Title struct {
	MainTitle           *string `json:"main_title,omitempty"`           // $a
	GeneralMaterial     *string `json:"general_material,omitempty"`     // $b
	ParallelTitle       *string `json:"parallel_title,omitempty"`       // $d
	OtherTitleInfo      *string `json:"other_title_info,omitempty"`     // $e
	FirstResponsibility *string `json:"first_responsibility,omitempty"` // $f
	OtherResponsibility *string `json:"other_responsibility,omitempty"` // $g
	PartNumber          *string `json:"part_number,omitempty"`          // $h
	PartName            *string `json:"part_name,omitempty"`            // $i
	InclusiveDates      *string `json:"inclusive_dates,omitempty"`      // $j
	BulkDates           *string `json:"bulk_dates,omitempty"`           // $k
	TitlePageInfo       *string `json:"title_page_info,omitempty"`      // $r
	Volume              *string `json:"volume,omitempty"`               // $v
	ParallelLanguage    *string `json:"parallel_language,omitempty"`    // $z
	Institution         *string `json:"institution,omitempty"`          // $5
}

func (Title) FieldNumber() contract.Number { return NumTitle }
func (Title) Kind() contract.Kind { return KindTitle }

func parseTitle(s *subs) Title {
	return Title{
		MainTitle:           s.joined('a'),
		GeneralMaterial:     s.joined('b'),
		ParallelTitle:       s.joined('d'),
		OtherTitleInfo:      s.joined('e'),
		FirstResponsibility: s.joined('f'),
		OtherResponsibility: s.joined('g'),
		PartNumber:          s.joined('h'),
		PartName:            s.joined('i'),
		InclusiveDates:      s.joined('j'),
		BulkDates:           s.joined('k'),
		TitlePageInfo:       s.joined('r'),
		Volume:              s.joined('v'),
		ParallelLanguage:    s.joined('z'),
		Institution:         s.joined('5'),
	}
}

// Publication 210 出版发行。
type Publication struct {
	Places               []string `json:"places,omitempty"`                // $a
	Addresses            []string `json:"addresses,omitempty"`             // $b
	Publishers           []string `json:"publishers,omitempty"`            // $c
	Dates                []string `json:"dates,omitempty"`                 // $d
	ManufacturePlaces    []string `json:"manufacture_places,omitempty"`    // $e
	ManufactureAddresses []string `json:"manufacture_addresses,omitempty"` // $f
	Manufacturers        []string `json:"manufacturers,omitempty"`         // $g
	ManufactureDates     []string `json:"manufacture_dates,omitempty"`     // $h
}

func (Publication) FieldNumber() contract.Number { return NumPublication }
func (Publication) Kind() contract.Kind { return KindPublication }

// PhysicalDescription 215 载体形态。
type PhysicalDescription struct {
	Extent       []string `json:"extent,omitempty"`        // $a
	OtherDetails *string  `json:"other_details,omitempty"` // $c
	Dimensions   []string `json:"dimensions,omitempty"`    // $d
	Accompanying []string `json:"accompanying,omitempty"`  // $e
}

func (PhysicalDescription) FieldNumber() contract.Number { return NumPhysicalDescription }
func (PhysicalDescription) Kind() contract.Kind { return KindPhysicalDescription }
