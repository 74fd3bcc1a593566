package targets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/marketplace-export-converter/internal/config"
	"github.com/ginjaninja78/marketplace-export-converter/internal/mapping"
	"github.com/ginjaninja78/marketplace-export-converter/internal/types"
)

var exportHeaders = []string{
	ColPartnerID, ColBarcode, ColModelCode, ColName, ColDescription, ColBrand,
	ColCategory, ColMarketPrice, ColSalePrice, ColStock, ColVAT, ColDesi,
	ColColor, ColSize, ColDimensions, ColImage(1), ColImage(2),
}

func exportRow(values ...string) types.SourceRow {
	return types.NewSourceRow(5, exportHeaders, values)
}

func build(t *testing.T, name string) *Target {
	t.Helper()
	target, err := Build(name, config.Default().Targets[name])
	require.NoError(t, err)
	return target
}

func mapOne(t *testing.T, target *Target, columns []string, row types.SourceRow) types.OutputRow {
	t.Helper()
	if columns == nil {
		columns = target.Columns
	}
	m, err := mapping.New(target.Table, types.NewSchema(columns), nil)
	require.NoError(t, err)
	rows := m.Map([]types.SourceRow{row})
	require.Len(t, rows, 1)
	return rows[0]
}

func TestBuild_UnknownTarget(t *testing.T) {
	_, err := Build("amazon", nil)
	assert.ErrorIs(t, err, types.ErrUnknownTarget)
	assert.ErrorContains(t, err, "hepsiburada")
}

func TestBuild_NameIsCaseInsensitive(t *testing.T) {
	target, err := Build("N11", nil)
	require.NoError(t, err)
	assert.Equal(t, config.TargetN11, target.Name)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"hepsiburada", "idefix", "n11", "pazarama"}, Names())
}

func TestBuiltinSchemasBindEveryField(t *testing.T) {
	tests := []struct {
		name    string
		columns int
	}{
		{config.TargetN11, 30},
		{config.TargetPazarama, 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := build(t, tt.name)
			require.True(t, target.HasBuiltinSchema())
			assert.Len(t, target.Columns, tt.columns)
			assert.Len(t, target.Table.Fields, tt.columns)

			m, err := mapping.New(target.Table, types.NewSchema(target.Columns), nil)
			require.NoError(t, err)
			assert.Empty(t, m.Unbound())
		})
	}
}

func TestTemplateTargetsHaveNoBuiltinSchema(t *testing.T) {
	assert.False(t, build(t, config.TargetHepsiburada).HasBuiltinSchema())
	assert.False(t, build(t, config.TargetIdefix).HasBuiltinSchema())
}

func TestN11(t *testing.T) {
	row := mapOne(t, build(t, config.TargetN11), nil, exportRow(
		"P1", "8680001", "VZ-01", "Vazo", "Dekoratif\nvazo", "hivhestın",
		"Vazo", "", "149.9", "abc", "", "", "", "", "10x20", "http://img/1", "",
	))

	assert.Equal(t, types.Text("VZ-01"), row.Get("Stok Kodu"))
	assert.Equal(t, types.Text("VZ-01"), row.Get("Model Kodu"))
	assert.Equal(t, types.Text("HIVHESTİN"), row.Get("Marka"))
	assert.Equal(t, types.Text("1000662"), row.Get("Kategori"))
	assert.Equal(t, types.Text("TRY"), row.Get("Para Birimi"))
	assert.Equal(t, types.Text("Dekoratif vazo"), row.Get("Ürün Açıklaması"))
	assert.Equal(t, types.Float(0), row.Get("Piyasa Satış Fiyatı (KDV Dahil)"))
	assert.Equal(t, types.Float(149.9), row.Get("N11 Satış Fiyatı (KDV Dahil)"))
	assert.Equal(t, types.Int(0), row.Get("Stok"))
	assert.Equal(t, types.Int(20), row.Get("KDV Oranı"))
	assert.Equal(t, types.Text("http://img/1"), row.Get("Görsel 1"))
	assert.Equal(t, types.Empty, row.Get("Görsel 9"))
	assert.Equal(t, types.Text("3"), row.Get("Hazırlık Süresi"))
	assert.Equal(t, types.Text("Varsayılan"), row.Get("Teslimat Şablonu İsmi"))
	assert.Equal(t, types.Text("8680001"), row.Get("Barkod (GTIN,EAN)"))
	assert.Equal(t, types.Text("Diğer"), row.Get("Renk"))
	assert.Equal(t, types.Text("10x20"), row.Get("Seçenekler"))
	assert.Equal(t, n11Columns, row.Columns())
}

func TestN11_ConstantsFromConfig(t *testing.T) {
	cfg := &config.TargetConfig{Constants: map[string]string{"currency": "EUR", "default_vat": "10"}}
	target, err := Build(config.TargetN11, cfg)
	require.NoError(t, err)

	row := mapOne(t, target, nil, exportRow("P1", "1", "A"))
	assert.Equal(t, types.Text("EUR"), row.Get("Para Birimi"))
	assert.Equal(t, types.Int(10), row.Get("KDV Oranı"))
}

func TestPazarama(t *testing.T) {
	row := mapOne(t, build(t, config.TargetPazarama), nil, exportRow(
		"P1", "8680001", "VZ-01", "Vazo", "", "", "",
		"199.9", "149.9", "7", "10", "", "Siyah", "", "18,5x20cm",
	))

	assert.Equal(t, types.Text("8680001"), row.Get("Barkod"))
	assert.Equal(t, types.Text("VZ-01"), row.Get("Grup Kodu"))
	assert.Equal(t, types.Text("VZ-01"), row.Get("Stok Kodu"))
	assert.Equal(t, types.Float(199.9), row.Get("Satış Fiyatı"))
	assert.Equal(t, types.Float(149.9), row.Get("İndirimli Satış Fiyatı"))
	assert.Equal(t, types.Int(7), row.Get("Stok Adedi"))
	assert.Equal(t, types.Int(10), row.Get("KDV Oranı"))
	assert.Equal(t, types.Text("Çok Renkli"), row.Get("renk seçimi"))
	assert.Equal(t, types.Text("Siyah"), row.Get("Renk"))
	assert.Equal(t, types.Text("Plastik"), row.Get("Materyal"))
	assert.Equal(t, types.Text("Tekli"), row.Get("Ölçü"))
	assert.Equal(t, types.Text("18.5"), row.Get("Uzunluk"))
	assert.Equal(t, types.Text("20"), row.Get("Genişlik"))
	assert.Equal(t, types.Empty, row.Get("Yükseklik"))
	assert.Equal(t, types.Empty, row.Get("Tema"))
}

func TestHepsiburada(t *testing.T) {
	template := []string{
		"Ürün Adı", "Satıcı Stok Kodu", "Barkod", "Varyant Grup Id", "Marka",
		"Desi", "KDV", "Garanti Süresi (Ay)", "Görsel1", "Fiyat", "Stok",
		"Seçenek", "Malzeme", "Kullanım Amacı", "Yaş Grubu",
	}
	target := build(t, config.TargetHepsiburada)

	m, err := mapping.New(target.Table, types.NewSchema(template), nil)
	require.NoError(t, err)

	rows := m.Map([]types.SourceRow{
		exportRow("P1", "111", "A-1", "Vazo", "", "hivhestın", "", "", "149.9", "", "20", "2.5", "", "", "18x20", "http://img/1"),
		exportRow("P2", "222", "A-1", "Vazo", "", "Hivhestin", "Dekor", "", "abc", "3", "", ""),
	})
	require.Len(t, rows, 2)

	first, second := rows[0], rows[1]
	assert.Equal(t, types.Text("Hivhestin Vazo"), first.Get("Ürün Adı"))
	assert.Equal(t, types.Text("Hivhestin"), first.Get("Marka"))
	assert.Equal(t, types.Text("A-1"), first.Get("Satıcı Stok Kodu"))
	assert.Equal(t, types.Text("A-1-1"), second.Get("Satıcı Stok Kodu"))
	assert.Equal(t, types.Text("A"), first.Get("Varyant Grup Id"))
	assert.Equal(t, types.Text("A"), second.Get("Varyant Grup Id"))
	assert.Equal(t, types.Float(2.5), first.Get("Desi"))
	assert.Equal(t, types.Int(20), first.Get("KDV"))
	assert.Equal(t, types.Int(0), first.Get("Garanti Süresi (Ay)"))
	assert.Equal(t, types.Text("http://img/1"), first.Get("Görsel1"))
	assert.Equal(t, types.Float(149.9), first.Get("Fiyat"))
	assert.Equal(t, types.Empty, second.Get("Fiyat"))
	assert.Equal(t, types.Int(3), second.Get("Stok"))
	assert.Equal(t, types.Text("18x20"), first.Get("Seçenek"))
	assert.Equal(t, types.Text("PLA"), first.Get("Malzeme"))
	assert.Equal(t, types.Empty, first.Get("Kullanım Amacı"))
	assert.Equal(t, types.Text("Dekor"), second.Get("Kullanım Amacı"))
	assert.Equal(t, types.Empty, first.Get("Yaş Grubu"))
}

func TestIdefix_Latin1TemplateColumns(t *testing.T) {
	template := []string{"Ürün Ad?", "Barkod", "Sat?c? Stok Kodu", "Varyant Grup Id", "Kategori", "Parti/Lot/SKT", "Görsel 1"}
	target := build(t, config.TargetIdefix)

	assert.Equal(t, len(template), mapping.CountMatches(target.Table.Columns(), template))

	row := mapOne(t, target, template, exportRow(
		"P1", "111", "A-1", "Vazo", "", "", "Dekor", "", "", "", "", "", "", "", "", "http://img/1",
	))
	assert.Equal(t, types.Text("Vazo"), row.Get("Ürün Ad?"))
	assert.Equal(t, types.Text("111"), row.Get("Sat?c? Stok Kodu"))
	assert.Equal(t, types.Text("A-1"), row.Get("Varyant Grup Id"))
	assert.Equal(t, types.Text("Dekor"), row.Get("Kategori"))
	assert.Equal(t, types.Empty, row.Get("Parti/Lot/SKT"))
	assert.Equal(t, types.Text("http://img/1"), row.Get("Görsel 1"))
}
