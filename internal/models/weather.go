package models

// Weather holds current conditions.
//
// ApparentTemperature and Humidity come from the first entry of the hourly
// series, which approximates "now" and is not aligned to Time.
type Weather struct {
	Temperature         float64  `json:"temperature"`
	WindSpeed           float64  `json:"windSpeed"`
	WeatherCode         int      `json:"weatherCode"`
	Time                string   `json:"time"`
	Timezone            string   `json:"timezone"`
	ApparentTemperature *float64 `json:"apparentTemperature"`
	Humidity            *float64 `json:"humidity"`
}
