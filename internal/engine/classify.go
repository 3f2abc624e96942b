package engine

import (
	"strings"

	"tidy-go/internal/model"
)

// extensionTable is the single source of truth mapping a lower-cased
// extension (without the leading dot) to its file type. Keeping one
// table avoids drift between matching logic and anything that displays
// categories.
var extensionTable = map[string]model.FileType{
	// documents
	"pdf": model.FileTypeDocument, "doc": model.FileTypeDocument,
	"docx": model.FileTypeDocument, "txt": model.FileTypeDocument,
	"rtf": model.FileTypeDocument, "odt": model.FileTypeDocument,
	"md": model.FileTypeDocument, "pages": model.FileTypeDocument,
	"xls": model.FileTypeDocument, "xlsx": model.FileTypeDocument,
	"csv": model.FileTypeDocument, "numbers": model.FileTypeDocument,
	"ppt": model.FileTypeDocument, "pptx": model.FileTypeDocument,
	"key": model.FileTypeDocument, "epub": model.FileTypeDocument,

	// images
	"jpg": model.FileTypeImage, "jpeg": model.FileTypeImage,
	"png": model.FileTypeImage, "gif": model.FileTypeImage,
	"bmp": model.FileTypeImage, "tiff": model.FileTypeImage,
	"tif": model.FileTypeImage, "webp": model.FileTypeImage,
	"heic": model.FileTypeImage, "svg": model.FileTypeImage,
	"ico": model.FileTypeImage, "raw": model.FileTypeImage,

	// videos
	"mp4": model.FileTypeVideo, "mov": model.FileTypeVideo,
	"avi": model.FileTypeVideo, "mkv": model.FileTypeVideo,
	"wmv": model.FileTypeVideo, "flv": model.FileTypeVideo,
	"webm": model.FileTypeVideo, "m4v": model.FileTypeVideo,
	"mpg": model.FileTypeVideo, "mpeg": model.FileTypeVideo,

	// audio
	"mp3": model.FileTypeAudio, "wav": model.FileTypeAudio,
	"aac": model.FileTypeAudio, "flac": model.FileTypeAudio,
	"ogg": model.FileTypeAudio, "m4a": model.FileTypeAudio,
	"wma": model.FileTypeAudio, "aiff": model.FileTypeAudio,

	// archives
	"zip": model.FileTypeArchive, "tar": model.FileTypeArchive,
	"gz": model.FileTypeArchive, "bz2": model.FileTypeArchive,
	"xz": model.FileTypeArchive, "7z": model.FileTypeArchive,
	"rar": model.FileTypeArchive, "dmg": model.FileTypeArchive,
	"iso": model.FileTypeArchive,

	// executables
	"exe": model.FileTypeExecutable, "app": model.FileTypeExecutable,
	"pkg": model.FileTypeExecutable, "deb": model.FileTypeExecutable,
	"rpm": model.FileTypeExecutable, "msi": model.FileTypeExecutable,
	"bin": model.FileTypeExecutable, "sh": model.FileTypeExecutable,
}

// Classify maps a file extension to its coarse file type. The extension
// may carry a leading dot and any casing. Unknown or empty extensions
// classify as Other. Total and deterministic.
func Classify(extension string) model.FileType {
	ext := strings.ToLower(strings.TrimPrefix(extension, "."))
	if ft, ok := extensionTable[ext]; ok {
		return ft
	}
	return model.FileTypeOther
}
