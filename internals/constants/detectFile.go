package constants

import (
	"path/filepath"
	"strings"
)

type FileKind string

const (
	FileKindImage       FileKind = "image"
	FileKindPDF         FileKind = "pdf"
	FileKindDocument    FileKind = "document"
	FileKindSpreadsheet FileKind = "spreadsheet"
	FileKindUnknown     FileKind = "unknown"
)

func DetectFileKindFromExt(filename string) FileKind {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
		return FileKindImage
	case ".pdf":
		return FileKindPDF
	case ".doc", ".docx", ".txt", ".ppt", ".pptx":
		return FileKindDocument
	case ".xls", ".xlsx", ".csv":
		return FileKindSpreadsheet
	default:
		return FileKindUnknown
	}
}

// UploadAccepts reports whether a file of the given name may be stored under uploadType.
func UploadAccepts(uploadType, filename string) bool {
	kind := DetectFileKindFromExt(filename)
	switch uploadType {
	case UploadStudentPhoto:
		return kind == FileKindImage
	case UploadDocument:
		return kind == FileKindPDF || kind == FileKindDocument || kind == FileKindSpreadsheet || kind == FileKindImage
	default:
		return true
	}
}
