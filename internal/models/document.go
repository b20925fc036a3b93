package models

import (
	"time"

	"github.com/dmitrijs2005/docsim/internal/common"
)

// Document is an uploaded text. ID is assigned by the store; the pair
// (Name, OwnerUserID) is unique. Documents are never updated in place.
type Document struct {
	ID          int64     `msgpack:"id"`
	Name        string    `msgpack:"name"`
	Content     string    `msgpack:"content"`
	UploadDate  time.Time `msgpack:"upload_date"`
	OwnerUserID string    `msgpack:"owner_user_id"`
	Path        string    `msgpack:"path"`
}

// DocumentPath is the display location of a document. It is derived from the
// owner and name and carries no authority of its own.
func DocumentPath(ownerUserID, name string) string {
	return common.DocumentsRoot + "/" + ownerUserID + "/" + name
}
