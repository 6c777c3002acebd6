// Package cities holds the static grid coordinates of the cities shown on the
// dashboard. Coordinates are KMA forecast grid cells, not latitude/longitude.
package cities

import "fmt"

// City is a display name bound to a forecast grid cell.
type City struct {
	Name string `json:"name"`
	NX   int    `json:"nx"`
	NY   int    `json:"ny"`
}

// Key returns the store key for the city's grid cell.
func (c City) Key() string {
	return GridKey(c.NX, c.NY)
}

// GridKey formats a grid cell as "nx-ny".
func GridKey(nx, ny int) string {
	return fmt.Sprintf("%d-%d", nx, ny)
}

// Registry is an ordered, name-unique set of cities.
type Registry struct {
	cities []City
	byName map[string]City
}

// NewRegistry builds a registry. Duplicate names are rejected.
func NewRegistry(list []City) (*Registry, error) {
	r := &Registry{
		cities: make([]City, 0, len(list)),
		byName: make(map[string]City, len(list)),
	}
	for _, c := range list {
		if _, dup := r.byName[c.Name]; dup {
			return nil, fmt.Errorf("duplicate city name %q", c.Name)
		}
		r.byName[c.Name] = c
		r.cities = append(r.cities, c)
	}
	return r, nil
}

func mustRegistry(list []City) *Registry {
	r, err := NewRegistry(list)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup matches name exactly: case, whitespace and normalization all count.
func (r *Registry) Lookup(name string) (City, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// Cities returns the cities in registry order.
func (r *Registry) Cities() []City {
	out := make([]City, len(r.cities))
	copy(out, r.cities)
	return out
}

// Len reports the number of cities.
func (r *Registry) Len() int {
	return len(r.cities)
}

var (
	featured = mustRegistry([]City{
		{"서울", 60, 127},
		{"부산", 98, 76},
		{"대구", 89, 90},
		{"인천", 55, 124},
		{"광주", 58, 74},
		{"대전", 67, 100},
		{"울산", 102, 84},
		{"세종", 66, 103},
	})

	all = mustRegistry([]City{
		// Seoul
		{"서울", 60, 127},

		// Gyeonggi
		{"수원", 60, 121},
		{"성남", 63, 124},
		{"용인", 64, 119},
		{"안양", 59, 123},
		{"안산", 58, 121},
		{"고양", 57, 128},
		{"의정부", 61, 130},
		{"파주", 56, 131},

		{"인천", 55, 124},

		// Gangwon
		{"춘천", 73, 134},
		{"원주", 76, 122},
		{"강릉", 92, 131},
		{"속초", 87, 141},

		// Chungbuk
		{"청주", 69, 107},
		{"충주", 76, 114},
		{"제천", 81, 118},

		// Chungnam
		{"천안", 63, 110},
		{"공주", 63, 102},
		{"보령", 54, 100},
		{"아산", 60, 110},

		{"대전", 67, 100},
		{"세종", 66, 103},

		// Jeonbuk
		{"전주", 63, 89},
		{"군산", 56, 92},
		{"익산", 60, 91},
		{"정읍", 58, 83},

		// Jeonnam
		{"목포", 50, 67},
		{"여수", 73, 66},
		{"순천", 70, 70},
		{"나주", 56, 71},

		{"광주", 58, 74},

		// Gyeongbuk
		{"포항", 102, 94},
		{"경주", 100, 91},
		{"안동", 91, 106},
		{"구미", 84, 96},

		{"대구", 89, 90},

		// Gyeongnam
		{"창원", 91, 77},
		{"진주", 81, 75},
		{"통영", 87, 68},
		{"김해", 95, 77},

		{"부산", 98, 76},
		{"울산", 102, 84},

		// Jeju
		{"제주", 52, 38},
		{"서귀포", 53, 32},
	})
)

// Featured returns the primary dashboard grid.
func Featured() *Registry { return featured }

// All returns the nationwide registry used for startup fetches and chat matching.
func All() *Registry { return all }
