package domain

// AuditReport counts records whose referenced parent no longer exists. All
// counts should be zero as long as every write goes through the service layer.
type AuditReport struct {
	FlightsMissingRoute    int64 `json:"flights_missing_route"`
	FlightsMissingAirplane int64 `json:"flights_missing_airplane"`
	AirplanesMissingType   int64 `json:"airplanes_missing_type"`
	RoutesMissingAirport   int64 `json:"routes_missing_airport"`
}

func (r *AuditReport) Clean() bool {
	return r.FlightsMissingRoute == 0 && r.FlightsMissingAirplane == 0 &&
		r.AirplanesMissingType == 0 && r.RoutesMissingAirport == 0
}
