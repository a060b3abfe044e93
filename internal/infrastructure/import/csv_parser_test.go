package csvimport

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestNewCSVParser(t *testing.T) {
	t.Run("Valid UTF-8 CSV", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("Category\nFruit\nDairy"))

		require.NoError(t, err)
		require.NotNil(t, parser)
	})

	t.Run("UTF-8 BOM is stripped", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("\xEF\xBB\xBFCategory,Brand\nFruit,Acme"))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		assert.Equal(t, "Category", parser.Headers()[0])
		assert.True(t, parser.HasHeader("category"))
	})

	t.Run("Empty file returns error", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader(""))

		assert.ErrorIs(t, err, ErrEmptyFile)
		assert.Nil(t, parser)
	})

	t.Run("Invalid UTF-8 returns error", func(t *testing.T) {
		_, err := NewCSVParser(strings.NewReader("name\n\xff\xfe\xfd"))

		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})

	t.Run("Multi-byte rune across the peek window", func(t *testing.T) {
		body := "name\n" + strings.Repeat("a", 4096-5-1) + "é"
		_, err := NewCSVParser(strings.NewReader(body))

		assert.NoError(t, err)
	})

	t.Run("Custom delimiter", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("name;brand\nMilk;Acme"), WithDelimiter(';'))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		assert.Equal(t, []string{"name", "brand"}, parser.Headers())
	})
}

func TestFoldHeader(t *testing.T) {
	cases := map[string]string{
		"Product Name":    "productname",
		"product_name":    "productname",
		" PRODUCT-NAME ":  "productname",
		"Stock  Quantity": "stockquantity",
		"Straße":          "strasse",
		"":                "",
	}
	for in, want := range cases {
		assert.Equal(t, want, FoldHeader(in), in)
	}
}

func TestParseHeader(t *testing.T) {
	t.Run("Lookup ignores case and spacing", func(t *testing.T) {
		parser, _ := NewCSVParser(strings.NewReader("Product Name,SKU,Price Per Case\nMilk,M-1,12.50"))
		require.NoError(t, parser.ParseHeader())

		idx, ok := parser.GetColumnIndex("product_name")
		assert.True(t, ok)
		assert.Equal(t, 0, idx)
		assert.True(t, parser.HasHeader("price per case"))
		assert.False(t, parser.HasHeader("brand"))
		assert.Equal(t, []string{"brand"}, parser.ValidateHeaders([]string{"Product Name", "brand"}))
	})

	t.Run("First duplicate header wins", func(t *testing.T) {
		parser, _ := NewCSVParser(strings.NewReader("name,Name\nfirst,second"))
		require.NoError(t, parser.ParseHeader())

		row, err := parser.ReadRow()
		require.NoError(t, err)
		assert.Equal(t, "first", row.Get("NAME"))
	})

	t.Run("Blank header row", func(t *testing.T) {
		parser, _ := NewCSVParser(strings.NewReader(" , \nx,y"))

		assert.ErrorIs(t, parser.ParseHeader(), ErrMissingHeader)
	})
}

func TestReadRow(t *testing.T) {
	parser, _ := NewCSVParser(strings.NewReader("Name,Brand,Price\n  Milk , Acme \nCheese,Dairy Co,4.5,extra"))
	require.NoError(t, parser.ParseHeader())

	row, err := parser.ReadRow()
	require.NoError(t, err)
	assert.Equal(t, 2, row.LineNumber)
	assert.Equal(t, "Milk", row.Get("name"))
	assert.Equal(t, "Acme", row.Get("brand"))
	assert.Equal(t, "", row.Get("price"))
	assert.Equal(t, "0", row.GetOrDefault("price", "0"))
	assert.Equal(t, "", row.Get("missing"))

	row, err = parser.ReadRow()
	require.NoError(t, err)
	assert.Equal(t, "4.5", row.Get("Price"))
	assert.Equal(t, map[string]string{"Name": "Cheese", "Brand": "Dairy Co", "Price": "4.5"}, row.Map(parser.Headers()))

	_, err = parser.ReadRow()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 2, parser.TotalRows())
}

func TestReadAllRows(t *testing.T) {
	t.Run("Skips blank rows", func(t *testing.T) {
		parser, _ := NewCSVParser(strings.NewReader("Category\nFruit\n,\nDairy\n"))
		require.NoError(t, parser.ParseHeader())

		rows, err := parser.ReadAllRows()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Dairy", rows[1].Get("category"))
		assert.Equal(t, 4, rows[1].LineNumber)
	})

	t.Run("Row limit", func(t *testing.T) {
		parser, _ := NewCSVParser(strings.NewReader("Category\na\nb\nc"), WithMaxRows(2))
		require.NoError(t, parser.ParseHeader())

		rows, err := parser.ReadAllRows()
		assert.ErrorIs(t, err, ErrTooManyRows)
		assert.Len(t, rows, 2)
	})
}

func TestParseFromBytes(t *testing.T) {
	parser, err := ParseFromBytes([]byte("a,b\n1,2"))
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())
	assert.Equal(t, 1, parser.CurrentRow())
}

func TestXLSXParser(t *testing.T) {
	workbook := func(t *testing.T, rows ...[]string) []byte {
		t.Helper()
		f := excelize.NewFile()
		defer func() { _ = f.Close() }()
		for i := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow("Sheet1", cell, &rows[i]))
		}
		buf, err := f.WriteToBuffer()
		require.NoError(t, err)
		return buf.Bytes()
	}

	t.Run("detected and read like CSV", func(t *testing.T) {
		data := workbook(t,
			[]string{" Product Name ", "Category"},
			[]string{"Cola ", "Soft Drinks"},
			[]string{"", ""},
			[]string{"Chips", "Snacks"},
		)
		require.True(t, IsXLSX(data))

		parser, err := ParseFromBytes(data)
		require.NoError(t, err)
		defer parser.Close()
		require.NoError(t, parser.ParseHeader())

		assert.Equal(t, []string{"Product Name", "Category"}, parser.Headers())
		rows, err := parser.ReadAllRows()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Cola", rows[0].Get("product_name"))
		assert.Equal(t, 2, rows[0].LineNumber)
		assert.Equal(t, "Snacks", rows[1].Get("category"))
		assert.Equal(t, 4, rows[1].LineNumber)
	})

	t.Run("row limit applies", func(t *testing.T) {
		data := workbook(t, []string{"Category"}, []string{"a"}, []string{"b"}, []string{"c"})

		parser, err := ParseFromBytes(data, WithMaxRows(2))
		require.NoError(t, err)
		defer parser.Close()
		require.NoError(t, parser.ParseHeader())

		_, err = parser.ReadAllRows()
		assert.ErrorIs(t, err, ErrTooManyRows)
	})

	t.Run("plain text is not a workbook", func(t *testing.T) {
		assert.False(t, IsXLSX([]byte("Category\nSnacks\n")))
	})

	t.Run("broken zip", func(t *testing.T) {
		_, err := NewXLSXParser(strings.NewReader("PK\x03\x04 not really"))
		assert.ErrorIs(t, err, ErrInvalidWorkbook)
	})
}
