package targets

import (
	"github.com/ginjaninja78/marketplace-export-converter/internal/config"
	"github.com/ginjaninja78/marketplace-export-converter/internal/mapping"
)

// Idefix fills the Idefix CSV template. Values are copied as text; the
// template decides which columns exist. Column names are written the way the
// marketplace spells them and also match the '?'-mangled spellings of a
// Latin-1 template.
func Idefix(cfg *config.TargetConfig) *Target {
	fields := []mapping.Field{
		{Column: "Ürün Adı", Resolve: mapping.Text(ColName)},
		{Column: "Barkod", Resolve: mapping.Text(ColBarcode)},
		{Column: "Kategori", Resolve: mapping.Text(ColCategory)},
		{Column: "Marka", Resolve: mapping.Brand(ColBrand, cfg.BrandCorrections)},
		{Column: "Ürün Açıklaması", Resolve: mapping.Text(ColDescription)},
		{Column: "Satıcı Stok Kodu", Resolve: mapping.Text(ColBarcode)},
		{Column: "Varyant Grup Id", Resolve: mapping.Text(ColModelCode)},
		{Column: "Stok Adedi", Resolve: mapping.Text(ColStock)},
		{Column: "Idefix Satış Fiyatı", Resolve: mapping.Text(ColSalePrice)},
		{Column: "Piyasa Satış Fiyatı", Resolve: mapping.Text(ColMarketPrice)},
		{Column: "KDV", Resolve: mapping.Text(ColVAT)},
		{Column: "Desi", Resolve: mapping.Text(ColDesi)},
		{Column: "Renk", Resolve: mapping.Text(ColColor)},
		{Column: "Boyut/Ebat", Resolve: mapping.Text(ColSize)},
	}
	fields = append(fields, images(sourceImageCount, ColImage)...)
	fields = append(fields, mapping.Field{Column: "Parti/Lot/SKT", Resolve: mapping.Text(ColBatch)})

	return &Target{
		Name:  config.TargetIdefix,
		Table: &mapping.Table{Name: config.TargetIdefix, Fields: fields},
	}
}
