package typed

// 定长编码数据中使用的代码表。未知代码按原值保留，Name() 返回空串。

// DateType 100 $a/8 日期类型。
type DateType string

const (
	DateCurrentSerial       DateType = "a"
	DateDeadSerial          DateType = "b"
	DateSerialUnknownStatus DateType = "c"
	DateMonographSingleYear DateType = "d"
	DateReproduction        DateType = "e"
	DateMonographUncertain  DateType = "f"
	DateMonographMultiYear  DateType = "g"
	DateMonographCopyright  DateType = "h"
	DateProductionRelease   DateType = "i"
	DateExact               DateType = "j"
	DatePublicationPrinting DateType = "k"
	DateCollectionInclusive DateType = "l"
	DateUnknown             DateType = "u"
)

var dateTypeNames = map[DateType]string{
	DateCurrentSerial:       "current continuing resource",
	DateDeadSerial:          "continuing resource no longer published",
	DateSerialUnknownStatus: "continuing resource of unknown status",
	DateMonographSingleYear: "monograph complete in one year",
	DateReproduction:        "reproduction",
	DateMonographUncertain:  "monograph with uncertain date",
	DateMonographMultiYear:  "monograph published over more than a year",
	DateMonographCopyright:  "monograph with publication and copyright dates",
	DateProductionRelease:   "production and release dates",
	DateExact:               "exact date of publication",
	DatePublicationPrinting: "different publication and printing dates",
	DateCollectionInclusive: "inclusive dates of a collection",
	DateUnknown:             "dates unknown",
}

func (c DateType) Name() string { return codeName(dateTypeNames, c) }

// TargetAudience 100 $a/17-19 目标读者代码。
type TargetAudience string

const (
	AudienceJuvenileGeneral TargetAudience = "a"
	AudiencePreschool       TargetAudience = "b"
	AudiencePrimary         TargetAudience = "c"
	AudienceChildren        TargetAudience = "d"
	AudienceYoungAdult      TargetAudience = "e"
	AudienceAdultSerious    TargetAudience = "k"
	AudienceAdultGeneral    TargetAudience = "m"
	AudienceUnknown         TargetAudience = "u"
)

var targetAudienceNames = map[TargetAudience]string{
	AudienceJuvenileGeneral: "juvenile, general",
	AudiencePreschool:       "pre-primary, age 0-5",
	AudiencePrimary:         "primary, age 5-10",
	AudienceChildren:        "children, age 9-14",
	AudienceYoungAdult:      "young adult, age 14-20",
	AudienceAdultSerious:    "adult, serious",
	AudienceAdultGeneral:    "adult, general",
	AudienceUnknown:         "unknown",
}

func (c TargetAudience) Name() string { return codeName(targetAudienceNames, c) }

// GovernmentPublication 100 $a/20 政府出版物代码。
type GovernmentPublication string

const (
	GovFederal           GovernmentPublication = "a"
	GovState             GovernmentPublication = "b"
	GovRegion            GovernmentPublication = "c"
	GovLocal             GovernmentPublication = "d"
	GovInterterritorial  GovernmentPublication = "e"
	GovIntergovernmental GovernmentPublication = "f"
	GovInExile           GovernmentPublication = "g"
	GovLevelUndetermined GovernmentPublication = "h"
	GovUnknown           GovernmentPublication = "u"
	GovNotGovernment     GovernmentPublication = "y"
	GovOtherLevel        GovernmentPublication = "z"
)

var governmentPublicationNames = map[GovernmentPublication]string{
	GovFederal:           "federal or national",
	GovState:             "state or province",
	GovRegion:            "county or department",
	GovLocal:             "local",
	GovInterterritorial:  "inter-territorial",
	GovIntergovernmental: "intergovernmental",
	GovInExile:           "government in exile or clandestine",
	GovLevelUndetermined: "level undetermined",
	GovUnknown:           "unknown",
	GovNotGovernment:     "not a government publication",
	GovOtherLevel:        "other administrative level",
}

func (c GovernmentPublication) Name() string { return codeName(governmentPublicationNames, c) }

// Transliteration 100 $a/25 音译代码。
type Transliteration string

const (
	TranslitISO      Transliteration = "a"
	TranslitOther    Transliteration = "b"
	TranslitMultiple Transliteration = "c"
	TranslitNone     Transliteration = "y"
)

var transliterationNames = map[Transliteration]string{
	TranslitISO:      "ISO transliteration",
	TranslitOther:    "other rules",
	TranslitMultiple: "multiple transliteration schemes",
	TranslitNone:     "no transliteration",
}

func (c Transliteration) Name() string { return codeName(transliterationNames, c) }

// CharacterSet 100 $a/26-33 字符集（两位代码）。
type CharacterSet string

const (
	CharsetISO646        CharacterSet = "01"
	CharsetISO37         CharacterSet = "02"
	CharsetISO5426       CharacterSet = "03"
	CharsetISO5427       CharacterSet = "04"
	CharsetISO5428       CharacterSet = "05"
	CharsetISO6438       CharacterSet = "06"
	CharsetISO10586      CharacterSet = "07"
	CharsetISO8957Table1 CharacterSet = "08"
	CharsetISO8957Table2 CharacterSet = "09"
	CharsetReserved      CharacterSet = "10"
	CharsetISO5426Part2  CharacterSet = "11"
	CharsetUnicode       CharacterSet = "50"
	CharsetCP866         CharacterSet = "79"
	CharsetWin1251       CharacterSet = "89"
	CharsetKOI8          CharacterSet = "99"
)

var characterSetNames = map[CharacterSet]string{
	CharsetISO646:        "ISO 646 IRV",
	CharsetISO37:         "ISO registration 37 (basic Cyrillic)",
	CharsetISO5426:       "ISO 5426 (extended Latin)",
	CharsetISO5427:       "ISO 5427 (extended Cyrillic)",
	CharsetISO5428:       "ISO 5428 (Greek)",
	CharsetISO6438:       "ISO 6438 (African)",
	CharsetISO10586:      "ISO 10586 (Georgian)",
	CharsetISO8957Table1: "ISO 8957 (Hebrew) table 1",
	CharsetISO8957Table2: "ISO 8957 (Hebrew) table 2",
	CharsetReserved:      "reserved",
	CharsetISO5426Part2:  "ISO 5426-2",
	CharsetUnicode:       "ISO 10646 (Unicode, UTF-8)",
	CharsetCP866:         "code page 866",
	CharsetWin1251:       "windows-1251",
	CharsetKOI8:          "KOI-8",
}

func (c CharacterSet) Name() string { return codeName(characterSetNames, c) }

// TitleScript 100 $a/34-35 题名文字。
type TitleScript string

const (
	ScriptLatin      TitleScript = "ba"
	ScriptCyrillic   TitleScript = "ca"
	ScriptJapanese   TitleScript = "da"
	ScriptKanji      TitleScript = "db"
	ScriptKana       TitleScript = "dc"
	ScriptChinese    TitleScript = "ea"
	ScriptArabic     TitleScript = "fa"
	ScriptGreek      TitleScript = "ga"
	ScriptHebrew     TitleScript = "ha"
	ScriptThai       TitleScript = "ia"
	ScriptDevanagari TitleScript = "ja"
	ScriptKorean     TitleScript = "ka"
	ScriptTamil      TitleScript = "la"
	ScriptGeorgian   TitleScript = "ma"
	ScriptArmenian   TitleScript = "mb"
	ScriptOther      TitleScript = "zz"
)

var titleScriptNames = map[TitleScript]string{
	ScriptLatin:      "Latin",
	ScriptCyrillic:   "Cyrillic",
	ScriptJapanese:   "Japanese, script unspecified",
	ScriptKanji:      "Japanese kanji",
	ScriptKana:       "Japanese kana",
	ScriptChinese:    "Chinese",
	ScriptArabic:     "Arabic",
	ScriptGreek:      "Greek",
	ScriptHebrew:     "Hebrew",
	ScriptThai:       "Thai",
	ScriptDevanagari: "Devanagari",
	ScriptKorean:     "Korean",
	ScriptTamil:      "Tamil",
	ScriptGeorgian:   "Georgian",
	ScriptArmenian:   "Armenian",
	ScriptOther:      "other",
}

func (c TitleScript) Name() string { return codeName(titleScriptNames, c) }

// Illustration 105 $a/0-3 插图代码。
type Illustration string

const (
	IllusIllustrations Illustration = "a"
	IllusMaps          Illustration = "b"
	IllusPortraits     Illustration = "c"
	IllusCharts        Illustration = "d"
	IllusPlans         Illustration = "e"
	IllusPlates        Illustration = "f"
	IllusMusic         Illustration = "g"
	IllusFacsimiles    Illustration = "h"
	IllusCoatsOfArms   Illustration = "i"
	IllusGenealogical  Illustration = "j"
	IllusForms         Illustration = "k"
	IllusSamples       Illustration = "l"
	IllusSound         Illustration = "m"
	IllusTransparency  Illustration = "n"
	IllusIlluminations Illustration = "o"
	IllusNone          Illustration = "y"
)

var illustrationNames = map[Illustration]string{
	IllusIllustrations: "illustrations",
	IllusMaps:          "maps",
	IllusPortraits:     "portraits",
	IllusCharts:        "nautical charts",
	IllusPlans:         "plans",
	IllusPlates:        "plates",
	IllusMusic:         "music",
	IllusFacsimiles:    "facsimiles",
	IllusCoatsOfArms:   "coats of arms",
	IllusGenealogical:  "genealogical tables",
	IllusForms:         "forms",
	IllusSamples:       "samples",
	IllusSound:         "sound recordings",
	IllusTransparency:  "transparencies",
	IllusIlluminations: "illuminations",
	IllusNone:          "without illustrations",
}

func (c Illustration) Name() string { return codeName(illustrationNames, c) }

// ContentForm 105 $a/4-7 内容形式代码。
type ContentForm string

const (
	ContentSubDoctoralThesis ContentForm = "7"
	ContentBibliography      ContentForm = "a"
	ContentCatalogue         ContentForm = "b"
	ContentIndex             ContentForm = "c"
	ContentAbstract          ContentForm = "d"
	ContentDictionary        ContentForm = "e"
	ContentEncyclopaedia     ContentForm = "f"
	ContentDirectory         ContentForm = "g"
	ContentProject           ContentForm = "h"
	ContentStatistics        ContentForm = "i"
	ContentTextbook          ContentForm = "j"
	ContentPatent            ContentForm = "k"
	ContentStandard          ContentForm = "l"
	ContentThesis            ContentForm = "m"
	ContentLaws              ContentForm = "n"
	ContentNumericTables     ContentForm = "o"
	ContentTechnicalReport   ContentForm = "p"
	ContentExamPaper         ContentForm = "q"
	ContentReview            ContentForm = "r"
	ContentTreaties          ContentForm = "s"
	ContentCartoons          ContentForm = "t"
	ContentThesisRevised     ContentForm = "v"
	ContentReligious         ContentForm = "w"
	ContentOther             ContentForm = "z"
)

var contentFormNames = map[ContentForm]string{
	ContentSubDoctoralThesis: "academic work below doctoral level",
	ContentBibliography:      "bibliography",
	ContentCatalogue:         "catalogue",
	ContentIndex:             "index",
	ContentAbstract:          "abstract or summary",
	ContentDictionary:        "dictionary",
	ContentEncyclopaedia:     "encyclopaedia",
	ContentDirectory:         "directory",
	ContentProject:           "project description",
	ContentStatistics:        "statistics",
	ContentTextbook:          "programmed text book",
	ContentPatent:            "patent",
	ContentStandard:          "standard",
	ContentThesis:            "thesis (original)",
	ContentLaws:              "laws and legislation",
	ContentNumericTables:     "numeric tables",
	ContentTechnicalReport:   "technical report",
	ContentExamPaper:         "examination paper",
	ContentReview:            "literature survey or review",
	ContentTreaties:          "treaties",
	ContentCartoons:          "cartoons or comic strips",
	ContentThesisRevised:     "thesis (revised)",
	ContentReligious:         "religious text",
	ContentOther:             "other",
}

func (c ContentForm) Name() string { return codeName(contentFormNames, c) }

// Indicator 为 105 $a/8-10 的 0/1 指示符。
type Indicator string

const (
	IndicatorNo  Indicator = "0"
	IndicatorYes Indicator = "1"
)

var indicatorNames = map[Indicator]string{
	IndicatorNo:  "no",
	IndicatorYes: "yes",
}

func (c Indicator) Name() string { return codeName(indicatorNames, c) }

// LiteraryForm 105 $a/11 文学体裁代码。
type LiteraryForm string

const (
	LitFiction    LiteraryForm = "a"
	LitDrama      LiteraryForm = "b"
	LitEssays     LiteraryForm = "c"
	LitHumour     LiteraryForm = "d"
	LitLetters    LiteraryForm = "e"
	LitShortStory LiteraryForm = "f"
	LitPoetry     LiteraryForm = "g"
	LitSpeeches   LiteraryForm = "h"
	LitNotLiteral LiteraryForm = "y"
	LitMixed      LiteraryForm = "z"
)

var literaryFormNames = map[LiteraryForm]string{
	LitFiction:    "fiction",
	LitDrama:      "drama",
	LitEssays:     "essays",
	LitHumour:     "humour, satire",
	LitLetters:    "letters",
	LitShortStory: "short stories",
	LitPoetry:     "poetry",
	LitSpeeches:   "speeches, oratory",
	LitNotLiteral: "not a literary text",
	LitMixed:      "mixed or other forms",
}

func (c LiteraryForm) Name() string { return codeName(literaryFormNames, c) }

// Biography 105 $a/12 传记代码。
type Biography string

const (
	BioAutobiography Biography = "a"
	BioIndividual    Biography = "b"
	BioCollective    Biography = "c"
	BioContains      Biography = "d"
	BioNone          Biography = "y"
)

var biographyNames = map[Biography]string{
	BioAutobiography: "autobiography",
	BioIndividual:    "individual biography",
	BioCollective:    "collective biography",
	BioContains:      "contains biographical information",
	BioNone:          "not a biography",
}

func (c Biography) Name() string { return codeName(biographyNames, c) }

// Degree 105 $9 高等教育学位代码。
type Degree string

const (
	DegreeIncomplete Degree = "aa"
	DegreeBachelor   Degree = "ab"
	DegreeSpecialist Degree = "ac"
	DegreeMaster     Degree = "ad"
	DegreeUnknown    Degree = "au"
	DegreeCandidate  Degree = "ba"
	DegreeDoctor     Degree = "ca"
	DegreeOther      Degree = "zz"
)

var degreeNames = map[Degree]string{
	DegreeIncomplete: "incomplete higher education",
	DegreeBachelor:   "bachelor",
	DegreeSpecialist: "specialist",
	DegreeMaster:     "master",
	DegreeUnknown:    "higher education, unknown",
	DegreeCandidate:  "candidate of sciences",
	DegreeDoctor:     "doctor of sciences",
	DegreeOther:      "other",
}

func (c Degree) Name() string { return codeName(degreeNames, c) }

// Carrier 106 $a 载体形式。
type Carrier string

const (
	CarrierLargePrint  Carrier = "d"
	CarrierNewspaper   Carrier = "e"
	CarrierBraille     Carrier = "f"
	CarrierMicroprint  Carrier = "g"
	CarrierHandwritten Carrier = "h"
	CarrierMultimedia  Carrier = "i"
	CarrierMiniPrint   Carrier = "j"
	CarrierRegular     Carrier = "r"
	CarrierElectronic  Carrier = "s"
	CarrierMicroform   Carrier = "t"
	CarrierOther       Carrier = "z"
)

var carrierNames = map[Carrier]string{
	CarrierLargePrint:  "large print",
	CarrierNewspaper:   "newspaper format",
	CarrierBraille:     "braille or moon script",
	CarrierMicroprint:  "microprint",
	CarrierHandwritten: "hand-written",
	CarrierMultimedia:  "multimedia",
	CarrierMiniPrint:   "mini-print",
	CarrierRegular:     "regular print",
	CarrierElectronic:  "electronic resource",
	CarrierMicroform:   "microform",
	CarrierOther:       "other",
}

func (c Carrier) Name() string { return codeName(carrierNames, c) }
