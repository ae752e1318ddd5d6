package cache

import (
	"fmt"

	"roomrent/constants"
)

func AreaListKey() string {
	return constants.AreaInfoCacheKey
}

func HomePageKey() string {
	return constants.HomePageCacheKey
}

func HouseDetailKey(houseID uint) string {
	return fmt.Sprintf("%s%d", constants.HouseDetailKeyPrefix, houseID)
}

// HouseListKey identifies one filter combination; pages are hash fields under it.
// Dates are the raw query strings so "" and a missing bound map to the same key.
func HouseListKey(areaID, startDate, endDate, sortKey string) string {
	return fmt.Sprintf("%s%s_%s_%s_%s", constants.HouseListKeyPrefix, areaID, startDate, endDate, sortKey)
}

func PageField(page int) string {
	return fmt.Sprintf("%d", page)
}
