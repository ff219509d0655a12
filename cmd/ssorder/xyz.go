package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/curvelab/ssorder/geom"
)

// readXYZ reads a single frame in plain XYZ format: an atom count, a
// comment line, then one "element x y z" line per atom. Only the
// coordinates are kept; element labels are ignored.
func readXYZ(path string) ([]geom.Coords, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, fmt.Errorf("missing atom count line")
	}
	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("bad atom count %q", scanner.Text())
	}
	if !scanner.Scan() {
		return nil, fmt.Errorf("missing comment line")
	}

	coords := make([]geom.Coords, 0, n)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, fmt.Errorf("line %d: want element and three "+
				"coordinates, got %q", len(coords)+3, line)
		}
		var p geom.Coords
		for i := 0; i < 3; i++ {
			if p[i], err = strconv.ParseFloat(fields[1+i], 64); err != nil {
				return nil, fmt.Errorf("line %d: bad coordinate %q",
					len(coords)+3, fields[1+i])
			}
		}
		coords = append(coords, p)
		if len(coords) == n {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(coords) != n {
		return nil, fmt.Errorf("header promises %d atoms but the file has %d",
			n, len(coords))
	}
	return coords, nil
}
