package database

import (
	"embed"
	"io/fs"
)

//go:embed schema/*.sql
var embeddedSchema embed.FS

// SchemaFS, binary'ye gömülü schema dosyalarını kök dizinden erişilebilir şekilde döner.
// Derleme zamanında gömüldüğü için deploy edilen binary'nin yanında SQL dosyası gerekmez.
func SchemaFS() fs.FS {
	sub, err := fs.Sub(embeddedSchema, "schema")
	if err != nil {
		// go:embed pattern'i derleme zamanında doğrulandığı için buraya düşülemez.
		panic(err)
	}
	return sub
}
