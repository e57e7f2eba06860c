package constants

type PackageCategory string

const (
	PackageSmall  PackageCategory = "SMALL"
	PackageMedium PackageCategory = "MEDIUM"
	PackageLarge  PackageCategory = "LARGE"
)

// PackageCategoryInfo describes the physical envelope of a package category.
type PackageCategoryInfo struct {
	Category    PackageCategory `json:"category"`
	Description string          `json:"description"`
	MaxWeightKg int             `json:"max_weight_kg"`
	MaxVolumeL  int             `json:"max_volume_l"`
}

var PackageCategories = []PackageCategoryInfo{
	{Category: PackageSmall, Description: "About a backpack", MaxWeightKg: 5, MaxVolumeL: 20},
	{Category: PackageMedium, Description: "About a standard cardboard box", MaxWeightKg: 15, MaxVolumeL: 50},
	{Category: PackageLarge, Description: "About a suitcase or large parcel", MaxWeightKg: 30, MaxVolumeL: 100},
}

func (c PackageCategory) Valid() bool {
	return c == PackageSmall || c == PackageMedium || c == PackageLarge
}
