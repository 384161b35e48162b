package typed

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rusmarc/pkg/contract"
	"rusmarc/pkg/field"
)

// sample 每个内置字段号的一行合法输入。
var sample = map[contract.Number]string{
	1:   "#1: RU/IS/BASE/301234567",
	3:   "#3: http://example.org/rec/1",
	5:   "#5: 20230131120000.0",
	10:  "#10: ^a978-5-17-090630-5^bв пер.^d300 р.^91000",
	11:  "#11: ^a0032-874X^f0032-874X",
	12:  "#12: ^aabcd efgh^2fei",
	13:  "#13: ^a979-0-2600-0043-8",
	14:  "#14: ^a10.1000/182^2doi",
	15:  "#15: ^aSCFR-ST--91/5",
	16:  "#16: ^aFRZ039101231",
	17:  "#17: ^a10.1000/xyz^2doi",
	20:  "#20: ^aRU^b12-3456",
	21:  "#21: ^aRU^b0321100017",
	22:  "#22: ^aRU^bGP-17",
	29:  "#29: ^aRU^bГОСТ 7.1-2003^cstandard",
	33:  "#33: ^ahttp://id.example.org/1",
	35:  "#35: ^a(RuMoRGB)01000000001",
	36:  "#36: ^a1^b1^c1^dviolin^mG-2",
	39:  "#39: ^aRU^b2019100001^c20190101",
	71:  "#71: ^aSR 90200^bМелодия",
	73:  "#73: ^a4600000000000",
	79:  "#79: ^a123^bИзд-во",
	100: "#100: ^a20230131d2023    k  y0rusy0289    ca",
	101: "#101: ^arus^ceng",
	102: "#102: ^aRU^b77",
	105: "#105: ^aa   j   000zy",
	106: "#106: ^ar",
	200: "#200: ^aВойна и мир^fЛ. Н. Толстой",
	210: "#210: ^aМосква^cАСТ^d2023",
	215: "#215: ^a1300 с.^d22 см",
}

func tokenizeLine(t *testing.T, line string) contract.Field {
	t.Helper()
	out := field.Tokenize(line)
	require.Equal(t, field.OutcomeField, out.Kind, "line %q: %v", line, out.Err)
	return out.Field
}

// TestBuiltinCrossCheck 每个表项的字段号与 Kind 必须与解析结果自报的一致
func TestBuiltinCrossCheck(t *testing.T) {
	reg := Default()
	require.Equal(t, len(sample), reg.Len(), "every builtin number needs a sample")
	for _, n := range reg.Numbers() {
		line, ok := sample[n]
		require.True(t, ok, "no sample for %d", n)
		f := tokenizeLine(t, line)
		require.Equal(t, n, f.Number)

		e, ok := reg.Lookup(n)
		require.True(t, ok)
		assert.Equal(t, n, e.Number)

		v, err := e.Parse(f.Payload)
		require.NoError(t, err, "field %d", n)
		assert.Equal(t, n, v.FieldNumber(), "field %d", n)
		assert.Equal(t, e.Kind, v.Kind(), "field %d", n)
		assert.True(t, strings.HasPrefix(string(e.Kind), fmt.Sprintf("%03d.", n)), "kind %q", e.Kind)
	}
}

func TestNumbersSorted(t *testing.T) {
	ns := Default().Numbers()
	for i := 1; i < len(ns); i++ {
		assert.Less(t, ns[i-1], ns[i])
	}
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	p := textual(func(s string) RecordID { return RecordID{ID: s} })
	_, err := NewRegistry(Entry{1, KindRecordID, p}, Entry{1, "001.other", p})
	assert.ErrorIs(t, err, contract.ErrInvalidInput)

	_, err = NewRegistry(Entry{1, KindRecordID, p}, Entry{2, KindRecordID, p})
	assert.ErrorIs(t, err, contract.ErrInvalidInput)

	_, err = NewRegistry(Entry{Number: 1, Kind: KindRecordID})
	assert.ErrorIs(t, err, contract.ErrInvalidInput)
}

type shelfMark struct{ Code string }

func (shelfMark) FieldNumber() contract.Number { return 903 }
func (shelfMark) Kind() contract.Kind { return "903.shelf_mark" }

// TestWithExtends 追加表项不影响原表
func TestWithExtends(t *testing.T) {
	base := Default()
	ext, err := base.With(Entry{903, "903.shelf_mark", textual(func(s string) shelfMark { return shelfMark{Code: s} })})
	require.NoError(t, err)

	f := tokenizeLine(t, "#903: 84(2Рос=Рус)1")
	_, err = base.Parse(f)
	assert.ErrorIs(t, err, contract.ErrUnknownField)

	v, err := ext.Parse(f)
	require.NoError(t, err)
	assert.Equal(t, shelfMark{Code: "84(2Рос=Рус)1"}, v)
	assert.Equal(t, base.Len()+1, ext.Len())

	_, err = ext.With(Entry{1, "001.again", textual(func(s string) RecordID { return RecordID{ID: s} })})
	assert.ErrorIs(t, err, contract.ErrInvalidInput)
}

// TestShapeErrors 整行与子字段形态互斥
func TestShapeErrors(t *testing.T) {
	reg := Default()
	_, err := reg.Parse(tokenizeLine(t, "#1: ^aid"))
	assert.ErrorIs(t, err, contract.ErrShape)

	_, err = reg.Parse(tokenizeLine(t, "#10: 978-5-17-090630-5"))
	assert.ErrorIs(t, err, contract.ErrShape)
	assert.False(t, errors.Is(err, contract.ErrCardinality))
}
