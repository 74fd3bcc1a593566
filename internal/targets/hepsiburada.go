package targets

import (
	"fmt"

	"github.com/ginjaninja78/marketplace-export-converter/internal/config"
	"github.com/ginjaninja78/marketplace-export-converter/internal/mapping"
	"github.com/ginjaninja78/marketplace-export-converter/internal/normalize"
)

// Hepsiburada fills the "3D Baskı Parçalar" template. The product name is
// prefixed with the (corrected) brand, and Satıcı Stok Kodu must be unique
// across the upload.
func Hepsiburada(cfg *config.TargetConfig) *Target {
	corrections := cfg.BrandCorrections

	fields := []mapping.Field{
		{Column: "Ürün Adı", Resolve: mapping.DisplayName(ColBrand, ColName, corrections)},
		{Column: "Satıcı Stok Kodu", Resolve: mapping.UniqueSKU(ColModelCode)},
		{Column: "Barkod", Resolve: mapping.Text(ColBarcode)},
		{Column: "Varyant Grup Id", Resolve: mapping.VariantGroup(ColModelCode)},
		{Column: "Ürün Açıklaması", Resolve: mapping.Text(ColDescription)},
		{Column: "Marka", Resolve: mapping.Brand(ColBrand, corrections)},
		{Column: "Desi", Resolve: mapping.Number(ColDesi, normalize.KindFloat)},
		{Column: "KDV", Resolve: mapping.Number(ColVAT, normalize.KindInt)},
		{Column: "Garanti Süresi (Ay)", Resolve: mapping.ConstantNumber(cfg.Constant("warranty_months", "0"), normalize.KindInt)},
	}
	fields = append(fields, images(sourceImageCount, func(i int) string { return fmt.Sprintf("Görsel%d", i) })...)
	fields = append(fields,
		mapping.Field{Column: "Fiyat", Resolve: mapping.Number(ColSalePrice, normalize.KindFloat)},
		mapping.Field{Column: "Stok", Resolve: mapping.Number(ColStock, normalize.KindInt)},
		mapping.Field{Column: "Renk", Resolve: mapping.Text(ColColor)},
		mapping.Field{Column: "Beden", Resolve: mapping.Text(ColSize)},
		mapping.Field{Column: "Seçenek", Resolve: mapping.Text(ColDimensions)},
		mapping.Field{Column: "Malzeme", Resolve: mapping.Constant(cfg.Constant("material", "PLA"))},
		mapping.Field{Column: "Kullanım Amacı", Resolve: mapping.Text(ColCategory)},
	)

	return &Target{
		Name:  config.TargetHepsiburada,
		Table: &mapping.Table{Name: config.TargetHepsiburada, Fields: fields},
	}
}
