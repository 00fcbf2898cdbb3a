package config

import "os"

func IsDebug() bool {
	return os.Getenv("TGSEARCH_DEBUG") == "1"
}
