package targets

import (
	"github.com/ginjaninja78/marketplace-export-converter/internal/config"
	"github.com/ginjaninja78/marketplace-export-converter/internal/mapping"
	"github.com/ginjaninja78/marketplace-export-converter/internal/normalize"
)

// n11Columns is the N11 bulk upload layout.
var n11Columns = []string{
	"Stok Kodu", "Model Kodu", "Marka", "Kategori", "Para Birimi",
	"Ürün Adı", "Ürün Açıklaması",
	"Piyasa Satış Fiyatı (KDV Dahil)", "N11 Satış Fiyatı (KDV Dahil)",
	"Stok", "KDV Oranı",
	"Görsel 1", "Görsel 2", "Görsel 3", "Görsel 4",
	"Görsel 5", "Görsel 6", "Görsel 7", "Görsel 8",
	"Görsel 9", "Görsel 10", "Görsel 11", "Görsel 12",
	"Hazırlık Süresi", "Teslimat Şablonu İsmi", "Katalog ID",
	"Barkod (GTIN,EAN)", "Maksimum Satış Adedi",
	"Renk", "Seçenekler",
}

// N11 builds the N11 target. Prices and stock fall back to zero and VAT to
// the configured default, since N11 rejects blank numeric cells.
func N11(cfg *config.TargetConfig) *Target {
	fields := []mapping.Field{
		{Column: "Stok Kodu", Resolve: mapping.UniqueSKU(ColModelCode)},
		{Column: "Model Kodu", Resolve: mapping.Text(ColModelCode)},
		{Column: "Marka", Resolve: mapping.Constant(cfg.Constant("brand", "HIVHESTİN"))},
		{Column: "Kategori", Resolve: mapping.Constant(cfg.Constant("category_id", "1000662"))},
		{Column: "Para Birimi", Resolve: mapping.Constant(cfg.Constant("currency", "TRY"))},
		{Column: "Ürün Adı", Resolve: mapping.Text(ColName)},
		{Column: "Ürün Açıklaması", Resolve: mapping.Text(ColDescription)},
		{Column: "Piyasa Satış Fiyatı (KDV Dahil)", Resolve: mapping.NumberOr(ColMarketPrice, normalize.KindFloat, 0)},
		{Column: "N11 Satış Fiyatı (KDV Dahil)", Resolve: mapping.NumberOr(ColSalePrice, normalize.KindFloat, 0)},
		{Column: "Stok", Resolve: mapping.NumberOr(ColStock, normalize.KindInt, 0)},
		{Column: "KDV Oranı", Resolve: mapping.NumberOr(ColVAT, normalize.KindInt, numberConstant(cfg, "default_vat", 20))},
	}
	fields = append(fields, images(sourceImageCount, ColImage)...)
	fields = append(fields, blanks("Görsel 9", "Görsel 10", "Görsel 11", "Görsel 12")...)
	fields = append(fields,
		mapping.Field{Column: "Hazırlık Süresi", Resolve: mapping.Constant(cfg.Constant("prep_time", "3"))},
		mapping.Field{Column: "Teslimat Şablonu İsmi", Resolve: mapping.Constant(cfg.Constant("delivery_template", "Varsayılan"))},
		mapping.Field{Column: "Barkod (GTIN,EAN)", Resolve: mapping.Text(ColBarcode)},
		mapping.Field{Column: "Renk", Resolve: mapping.TextOr(ColColor, cfg.Constant("default_color", "Diğer"))},
		mapping.Field{Column: "Seçenekler", Resolve: mapping.FirstText(mapping.Text(ColSize), mapping.Text(ColDimensions))},
	)
	fields = append(fields, blanks("Katalog ID", "Maksimum Satış Adedi")...)

	return &Target{
		Name:    config.TargetN11,
		Table:   &mapping.Table{Name: config.TargetN11, Fields: fields},
		Columns: n11Columns,
	}
}
