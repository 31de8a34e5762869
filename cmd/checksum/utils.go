package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Most runs end with this when asked for json
func PrintJson(w io.Writer, obj interface{}) error {
	rawjson, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(rawjson))
	return err
}

// Get a filesafe datetime, condensed (local time, I hope)
func FileSafeDateTime() string {
	currentTime := time.Now()
	return currentTime.Format("20060102-150405")
}
