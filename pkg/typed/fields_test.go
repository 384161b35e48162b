package typed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rusmarc/pkg/contract"
)

func parseLine(t *testing.T, line string) (contract.TypedField, error) {
	t.Helper()
	return Default().Parse(tokenizeLine(t, line))
}

func TestVersionExample(t *testing.T) {
	v, err := parseLine(t, "#5: 20230131120000.0\n")
	require.NoError(t, err)
	ver := v.(Version)
	assert.Equal(t, Version{Year: 2023, Month: 1, Day: 31, Hour: 12, Minute: 0, Second: 0, T: 0, HasT: true}, ver)
	assert.Equal(t, int64(1675166400), ver.Unix())
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("19991231235959")
	require.NoError(t, err)
	assert.False(t, v.HasT)
	assert.Equal(t, 59, v.Second)

	v, err = ParseVersion("20240229000000.42")
	require.NoError(t, err)
	assert.Equal(t, uint32(42), v.T)

	bad := []string{
		"2023013112000",      // 秒不足两位
		"2023",               // 缺少月
		"20230131120000.0.1", // 多个 '.'
		"2023-01-31",         // 非数字
		"20230131120000.",    // '.' 后无数字
		"202301311200001",    // 多余数字
		"20231331120000",     // 月越界
		"20230229120000",     // 非闰年
		"20230131250000",     // 小时越界
		"20230131120000.99999999999",
	}
	for _, s := range bad {
		_, err := ParseVersion(s)
		assert.ErrorIs(t, err, contract.ErrFormat, "%q", s)
	}
}

// TestAtMostOne: ^aX^bY^bZ 中 $a 唯一、$b 重复
func TestAtMostOne(t *testing.T) {
	f := tokenizeLine(t, "#10: ^aX^bY^bZ\n")
	a, err := maxOne(f.Payload, 'a')
	require.NoError(t, err)
	assert.Equal(t, "X", *a)

	_, err = maxOne(f.Payload, 'b')
	assert.ErrorIs(t, err, contract.ErrCardinality)

	none, err := maxOne(f.Payload, 'c')
	require.NoError(t, err)
	assert.Nil(t, none)

	// ISBN 的 $b 可重复
	v, err := Default().Parse(f)
	require.NoError(t, err)
	assert.Equal(t, []string{"Y", "Z"}, v.(ISBN).Qualifications)

	// ISMN 的 $b 不可重复
	_, err = parseLine(t, "#13: ^aX^bY^bZ")
	assert.ErrorIs(t, err, contract.ErrCardinality)

	_, err = parseLine(t, "#11: ^a1^a2")
	assert.ErrorIs(t, err, contract.ErrCardinality)
}

func TestTitleConcatenates(t *testing.T) {
	v, err := parseLine(t, "#200: ^aВойна ^aи мир^fЛ. Н. Толстой^eроман^eв 4 т.")
	require.NoError(t, err)
	title := v.(Title)
	assert.Equal(t, "Война и мир", *title.MainTitle)
	assert.Equal(t, "романв 4 т.", *title.OtherTitleInfo)
	assert.Equal(t, "Л. Н. Толстой", *title.FirstResponsibility)
	assert.Nil(t, title.ParallelTitle)
}

func TestGeneralProcessing(t *testing.T) {
	v, err := parseLine(t, "#100: ^a20230131d2023    k  y0rusy0289    ca")
	require.NoError(t, err)
	g := v.(GeneralProcessing)
	assert.Equal(t, "20230131", g.EntryDate)
	assert.Equal(t, DateMonographSingleYear, g.DateType)
	assert.Equal(t, "monograph complete in one year", g.DateType.Name())
	assert.Equal(t, "2023", g.Date1)
	assert.Equal(t, "    ", g.Date2)
	assert.Equal(t, []TargetAudience{AudienceAdultSerious}, g.Audience)
	require.NotNil(t, g.Government)
	assert.Equal(t, GovNotGovernment, *g.Government)
	assert.Equal(t, "0", *g.ModifiedRecord)
	assert.Equal(t, "rus", *g.CatalogingLanguage)
	assert.Equal(t, TranslitNone, *g.Transliteration)
	assert.Equal(t, []CharacterSet{CharsetISO37, CharsetWin1251}, g.CharacterSets)
	assert.Empty(t, g.ExtraCharacterSets)
	assert.Equal(t, ScriptCyrillic, *g.TitleScript)

	// 只有必需部分
	v, err = parseLine(t, "#100: ^a20230131u1999####")
	require.NoError(t, err)
	g = v.(GeneralProcessing)
	assert.Equal(t, DateUnknown, g.DateType)
	assert.Nil(t, g.Government)
	assert.Nil(t, g.TitleScript)

	_, err = parseLine(t, "#100: ^a20230131d20")
	assert.ErrorIs(t, err, contract.ErrFormat)
	_, err = parseLine(t, "#100: ^b20230131d2023    ")
	assert.ErrorIs(t, err, contract.ErrCardinality)
}

func TestUnknownCodeKeptVerbatim(t *testing.T) {
	v, err := parseLine(t, "#100: ^a20230131x2023    q")
	require.NoError(t, err)
	g := v.(GeneralProcessing)
	assert.Equal(t, DateType("x"), g.DateType)
	assert.Equal(t, "", g.DateType.Name())
	assert.Equal(t, []TargetAudience{"q"}, g.Audience)
}

func TestTextMaterials(t *testing.T) {
	v, err := parseLine(t, "#105: ^aab  j7  101ay^9ab")
	require.NoError(t, err)
	tm := v.(TextMaterials)
	assert.Equal(t, []Illustration{IllusIllustrations, IllusMaps}, tm.Illustrations)
	assert.Equal(t, []ContentForm{ContentTextbook, ContentSubDoctoralThesis}, tm.ContentForms)
	assert.Equal(t, IndicatorYes, *tm.Conference)
	assert.Equal(t, IndicatorNo, *tm.Festschrift)
	assert.Equal(t, IndicatorYes, *tm.Index)
	assert.Equal(t, LitFiction, *tm.LiteraryForm)
	assert.Equal(t, BioNone, *tm.Biography)
	assert.Equal(t, DegreeBachelor, *tm.Degree)
	assert.Equal(t, "bachelor", tm.Degree.Name())

	v, err = parseLine(t, "#105: ^ay")
	require.NoError(t, err)
	tm = v.(TextMaterials)
	assert.Equal(t, []Illustration{IllusNone}, tm.Illustrations)
	assert.Nil(t, tm.Conference)
}

func TestDocumentForm(t *testing.T) {
	v, err := parseLine(t, "#106: ^as")
	require.NoError(t, err)
	assert.Equal(t, CarrierElectronic, *v.(DocumentForm).Carrier)

	v, err = parseLine(t, "#106: ^9x")
	require.NoError(t, err)
	assert.Nil(t, v.(DocumentForm).Carrier)
}

func TestPublicationAndExtent(t *testing.T) {
	v, err := parseLine(t, "#210: ^aМосква^aСПб.^cНаука^d2019")
	require.NoError(t, err)
	p := v.(Publication)
	assert.Equal(t, []string{"Москва", "СПб."}, p.Places)
	assert.Equal(t, []string{"Наука"}, p.Publishers)

	v, err = parseLine(t, "#215: ^a256 с.^cил.^d21 см^cтабл.")
	assert.ErrorIs(t, err, contract.ErrCardinality)
	assert.Nil(t, v)
}
