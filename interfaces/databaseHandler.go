package interfaces

import "time"

type DatabaseHandler interface {
	WritePoint(measurement string, tags map[string]string, fields map[string]interface{}, timeStamp time.Time)
	Flush()
	Close()
}
