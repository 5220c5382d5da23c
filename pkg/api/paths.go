package api

import (
	"strconv"
	"strings"
)

// Пути REST API удаленного хранилища
const (
	TokenPath             = "/api-token-auth/"
	BaseLocationPath      = "/api/baselocation/"
	DrivingTimeMatrixPath = "/api/drivingtimematrix/"
	HealthPath            = "/health"
	MetricsPath           = "/metrics"

	// LocationsParam query parameter of DrivingTimeMatrixPath: "1;2;3"
	LocationsParam = "locations"
)

// ListPath returns the collection path of a kind, e.g. /api/tour/.
func ListPath(kind string) string {
	return "/api/" + kind + "/"
}

// RecordPath returns the path of a single record, e.g. /api/tour/5/.
func RecordPath(kind string, id int64) string {
	var b strings.Builder
	b.WriteString(ListPath(kind))
	b.WriteString(strconv.FormatInt(id, 10))
	b.WriteString("/")
	return b.String()
}
