package targets

import (
	"fmt"

	"github.com/ginjaninja78/marketplace-export-converter/internal/config"
	"github.com/ginjaninja78/marketplace-export-converter/internal/mapping"
	"github.com/ginjaninja78/marketplace-export-converter/internal/normalize"
)

// pazaramaColumns is the Pazarama product list layout.
var pazaramaColumns = []string{
	"Barkod", "Marka", "Grup Kodu", "Kategori", "Para Birimi",
	"Ürün Adı", "Ürün Açıklama", "Satış Fiyatı", "İndirimli Satış Fiyatı",
	"Stok Adedi", "Stok Kodu", "KDV Oranı",
	"Görsel Linki-1", "Görsel Linki-2", "Görsel Linki-3", "Görsel Linki-4", "Görsel Linki-5",
	"Maksimum Ürün Satış Adedi Kısıtı", "Ürün Bilgi Formu",
	"renk seçimi", "Renk", "Materyal", "Ölçü",
	"Ağırlık", "Uzunluk", "Genişlik", "Yükseklik", "Tema",
}

// pazaramaImages is how many image links Pazarama accepts.
const pazaramaImages = 5

// Pazarama builds the Pazarama target. The package size comes from the
// free-text Boyut/Ebat column split into three axes.
func Pazarama(cfg *config.TargetConfig) *Target {
	fields := []mapping.Field{
		{Column: "Barkod", Resolve: mapping.Text(ColBarcode)},
		{Column: "Marka", Resolve: mapping.Constant(cfg.Constant("brand", "HIVHESTİN"))},
		{Column: "Grup Kodu", Resolve: mapping.Text(ColModelCode)},
		{Column: "Kategori", Resolve: mapping.Constant(cfg.Constant("category_id", "ac9982d3-3e82-4efc-86fe-6792bb3931ee"))},
		{Column: "Para Birimi", Resolve: mapping.Constant(cfg.Constant("currency", "TRY"))},
		{Column: "Ürün Adı", Resolve: mapping.Text(ColName)},
		{Column: "Ürün Açıklama", Resolve: mapping.Text(ColDescription)},
		{Column: "Satış Fiyatı", Resolve: mapping.NumberOr(ColMarketPrice, normalize.KindFloat, 0)},
		{Column: "İndirimli Satış Fiyatı", Resolve: mapping.NumberOr(ColSalePrice, normalize.KindFloat, 0)},
		{Column: "Stok Adedi", Resolve: mapping.NumberOr(ColStock, normalize.KindInt, 0)},
		{Column: "Stok Kodu", Resolve: mapping.UniqueSKU(ColModelCode)},
		{Column: "KDV Oranı", Resolve: mapping.NumberOr(ColVAT, normalize.KindInt, numberConstant(cfg, "default_vat", 20))},
	}
	fields = append(fields, images(pazaramaImages, func(i int) string { return fmt.Sprintf("Görsel Linki-%d", i) })...)
	fields = append(fields, blanks("Maksimum Ürün Satış Adedi Kısıtı", "Ürün Bilgi Formu")...)
	fields = append(fields,
		mapping.Field{Column: "renk seçimi", Resolve: mapping.Constant(cfg.Constant("color_choice", "Çok Renkli"))},
		mapping.Field{Column: "Renk", Resolve: mapping.Text(ColColor)},
		mapping.Field{Column: "Materyal", Resolve: mapping.Constant(cfg.Constant("material", "Plastik"))},
		mapping.Field{Column: "Ölçü", Resolve: mapping.Constant(cfg.Constant("size_option", "Tekli"))},
		mapping.Field{Column: "Uzunluk", Resolve: mapping.Dimension(ColDimensions, mapping.Length)},
		mapping.Field{Column: "Genişlik", Resolve: mapping.Dimension(ColDimensions, mapping.Width)},
		mapping.Field{Column: "Yükseklik", Resolve: mapping.Dimension(ColDimensions, mapping.Height)},
	)
	fields = append(fields, blanks("Ağırlık", "Tema")...)

	return &Target{
		Name:    config.TargetPazarama,
		Table:   &mapping.Table{Name: config.TargetPazarama, Fields: fields},
		Columns: pazaramaColumns,
	}
}
