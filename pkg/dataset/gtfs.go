package dataset

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/OneBusAway/go-gtfs"

	"github.com/crosswalklabs/crosswalk/internal/logging"
)

// ReadGTFSStops loads the stops of a static GTFS feed as a Table with
// stop_id, stop_name, stop_lat, and stop_lon columns. Source may be an HTTP
// URL or a local zip path. Matching stop names between two feeds is the
// typical use.
func ReadGTFSStops(source string) (*Table, error) {
	isLocalFile := !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://")
	b, err := rawGTFSData(source, isLocalFile)
	if err != nil {
		return nil, err
	}
	return StopsTable(b)
}

func rawGTFSData(source string, isLocalFile bool) ([]byte, error) {
	var b []byte
	var err error

	if isLocalFile {
		b, err = os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local GTFS file: %w", err)
		}
	} else {
		resp, err := http.Get(source)
		if err != nil {
			return nil, fmt.Errorf("error downloading GTFS data: %w", err)
		}
		defer logging.SafeCloseWithLogging(resp.Body,
			slog.Default().With(slog.String("component", "gtfs_downloader")),
			"http_response_body")

		b, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("error reading GTFS data: %w", err)
		}
	}
	return b, nil
}

// StopsTable parses static GTFS bytes and lays the stops out as a Table, in
// feed order. Stops without coordinates get empty lat/lon cells.
func StopsTable(data []byte) (*Table, error) {
	staticData, err := gtfs.ParseStatic(data, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("error parsing GTFS data: %w", err)
	}

	rows := make([][]string, 0, len(staticData.Stops))
	for _, stop := range staticData.Stops {
		rows = append(rows, []string{
			stop.Id,
			stop.Name,
			formatCoordinate(stop.Latitude),
			formatCoordinate(stop.Longitude),
		})
	}
	return NewTable([]string{"stop_id", "stop_name", "stop_lat", "stop_lon"}, rows)
}

func formatCoordinate(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
