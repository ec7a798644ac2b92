// Package store saves and restores an engine as flat whitespace-separated
// records, one file per record kind.
package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dharmasatrya/flightreservation/internal/models"
	"github.com/dharmasatrya/flightreservation/internal/reservation"
)

type Paths struct {
	Flights    string
	Waitlists  string
	Passengers string
}

func DefaultPaths(dir string) Paths {
	return Paths{
		Flights:    filepath.Join(dir, "flights.txt"),
		Waitlists:  filepath.Join(dir, "waitlists.txt"),
		Passengers: filepath.Join(dir, "passengers.txt"),
	}
}

type LoadReport struct {
	Flights    int
	Passengers int
	Waitlisted int
	// Skipped counts passenger and waitlist records naming a flight that was
	// not loaded.
	Skipped  int
	Promoted int
}

// emptyToken stands in for an unset schedule time so every record keeps its
// field count.
const emptyToken = "-"

func encodeToken(s string) string {
	if s == "" {
		return emptyToken
	}
	return s
}

func decodeToken(s string) string {
	if s == emptyToken {
		return ""
	}
	return s
}

const (
	flightFields    = 9
	waitlistFields  = 4
	passengerFields = 3
)

// Load replays flights, then passengers, then waitlists into e. A missing file
// counts as empty.
func Load(paths Paths, e *reservation.Engine) (LoadReport, error) {
	var report LoadReport

	err := readRecords(paths.Flights, flightFields, func(fields []string) error {
		spec, booked, err := parseFlight(fields)
		if err != nil {
			return err
		}
		if err := e.RestoreFlight(spec, booked); err != nil {
			return err
		}
		report.Flights++
		return nil
	})
	if err != nil {
		return report, err
	}

	err = readRecords(paths.Passengers, passengerFields, func(fields []string) error {
		if _, ok := e.FindFlight(fields[0]); !ok {
			report.Skipped++
			return nil
		}
		id, err := parseInt("passenger id", fields[2])
		if err != nil {
			return err
		}
		if err := e.RestorePassenger(fields[0], fields[1], id); err != nil {
			return err
		}
		report.Passengers++
		return nil
	})
	if err != nil {
		return report, err
	}

	err = readRecords(paths.Waitlists, waitlistFields, func(fields []string) error {
		if _, ok := e.FindFlight(fields[0]); !ok {
			report.Skipped++
			return nil
		}
		id, err := parseInt("passenger id", fields[2])
		if err != nil {
			return err
		}
		priority, err := parseInt("priority", fields[3])
		if err != nil {
			return err
		}
		if err := e.RestoreWaitlistEntry(fields[0], fields[1], id, priority); err != nil {
			return err
		}
		report.Waitlisted++
		return nil
	})
	if err != nil {
		return report, err
	}

	report.Promoted = e.PromoteWaitlisted()
	return report, nil
}

func readRecords(path string, want int, fn func(fields []string) error) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != want {
			return fmt.Errorf("%s:%d: want %d fields, got %d: %w", path, line, want, len(fields), models.ErrInvalidInput)
		}
		if err := fn(fields); err != nil {
			return fmt.Errorf("%s:%d: %w", path, line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

func parseFlight(fields []string) (reservation.FlightSpec, int, error) {
	price, err := strconv.ParseFloat(fields[6], 64)
	if err != nil {
		return reservation.FlightSpec{}, 0, fmt.Errorf("price %q: %w", fields[6], models.ErrInvalidInput)
	}
	capacity, err := parseInt("capacity", fields[7])
	if err != nil {
		return reservation.FlightSpec{}, 0, err
	}
	booked, err := parseInt("booked", fields[8])
	if err != nil {
		return reservation.FlightSpec{}, 0, err
	}
	return reservation.FlightSpec{
		ID:            fields[0],
		Airline:       fields[1],
		Origin:        fields[2],
		Destination:   fields[3],
		DepartureTime: decodeToken(fields[4]),
		ArrivalTime:   decodeToken(fields[5]),
		Price:         price,
		Capacity:      capacity,
	}, booked, nil
}

func parseInt(field, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", field, s, models.ErrInvalidInput)
	}
	return n, nil
}

// Save writes every flight in id order, its named passengers, and its
// waitlist in promotion order. Each file is replaced atomically.
func Save(paths Paths, e *reservation.Engine) error {
	flights := e.ListFlights()

	err := writeFile(paths.Flights, func(w io.Writer) error {
		for _, f := range flights {
			_, err := fmt.Fprintf(w, "%s %s %s %s %s %s %s %d %d\n",
				f.ID, f.Airline, f.Origin, f.Destination, encodeToken(f.DepartureTime), encodeToken(f.ArrivalTime),
				strconv.FormatFloat(f.Price, 'f', -1, 64), f.Capacity, f.Booked())
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	err = writeFile(paths.Passengers, func(w io.Writer) error {
		for _, f := range flights {
			for _, p := range f.Passengers() {
				if _, err := fmt.Fprintf(w, "%s %s %d\n", f.ID, p.Name, p.ID); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return writeFile(paths.Waitlists, func(w io.Writer) error {
		for _, f := range flights {
			for _, entry := range f.Waitlist().Ordered() {
				if _, err := fmt.Fprintf(w, "%s %s %d %d\n", f.ID, entry.Name, entry.PassengerID, entry.Priority); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func writeFile(path string, fill func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	w := bufio.NewWriter(tmpFile)
	if err := fill(w); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	success = true
	return nil
}
