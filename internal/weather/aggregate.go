package weather

// FilterAndGroup keeps the records for fcstTime and groups them by category.
// Within a group, records keep their input order.
func FilterAndGroup(records []ForecastRecord, fcstTime string) GroupedForecast {
	grouped := make(GroupedForecast)
	for _, r := range records {
		if r.FcstTime != fcstTime {
			continue
		}
		grouped[r.Category] = append(grouped[r.Category], r)
	}
	return grouped
}
