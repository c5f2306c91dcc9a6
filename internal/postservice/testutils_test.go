package postservice

import (
	"database/sql/driver"

	"github.com/lib/pq"
)

func pqArray(terms []string) driver.Valuer {
	return pq.StringArray(terms)
}
