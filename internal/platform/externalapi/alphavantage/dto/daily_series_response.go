// Package dto defines the wire formats of the Alpha Vantage API.
package dto

// DailySeriesResponse is the shape of a DIGITAL_CURRENCY_DAILY response. The
// time series maps date strings to rows whose keys carry the API's numeric
// column prefixes.
type DailySeriesResponse struct {
	TimeSeries   map[string]DailyRow `json:"Time Series (Digital Currency Daily)"`
	Note         string              `json:"Note"`
	Information  string              `json:"Information"`
	ErrorMessage string              `json:"Error Message"`
}

// DailyRow is one day of a digital currency series. All values arrive as
// strings and must be coerced to numbers.
type DailyRow struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}
