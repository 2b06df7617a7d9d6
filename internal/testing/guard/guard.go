package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("ORCAMENTA_TEST_MODE") == "" {
			_ = os.Setenv("ORCAMENTA_TEST_MODE", "1")
		}
	})
}
