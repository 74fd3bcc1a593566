package targets

import "fmt"

// Source columns of the marketplace export.
const (
	ColPartnerID     = "Partner ID"
	ColBarcode       = "Barkod"
	ColModelCode     = "Model Kodu"
	ColName          = "Ürün Adı"
	ColDescription   = "Ürün Açıklaması"
	ColBrand         = "Marka"
	ColCategory      = "Kategori İsmi"
	ColMarketPrice   = "Piyasa Satış Fiyatı (KDV Dahil)"
	ColSalePrice     = "Trendyol'da Satılacak Fiyat (KDV Dahil)"
	ColStock         = "Ürün Stok Adedi"
	ColVAT           = "KDV Oranı"
	ColDesi          = "Desi"
	ColColor         = "Ürün Rengi"
	ColSize          = "Beden"
	ColDimensions    = "Boyut/Ebat"
	ColBatch         = "Parti/Lot/SKT Bilgisi"
	sourceImageCount = 8
)

// ColImage returns the source image column n (1-based): "Görsel 1".
func ColImage(n int) string {
	return fmt.Sprintf("Görsel %d", n)
}
