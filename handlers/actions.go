package handlers

// StorageAction - замкнутое множество действий маршрута api/storage/{action}
type StorageAction int

const (
	StorageActionUnknown StorageAction = iota
	StorageActionUploadURL
	StorageActionDownloadURL
)

// String возвращает значение параметра пути
func (a StorageAction) String() string {
	switch a {
	case StorageActionUploadURL:
		return "upload-url"
	case StorageActionDownloadURL:
		return "download-url"
	default:
		return "unknown"
	}
}

// KeyPrefix возвращает префикс ключа объекта для действия
func (a StorageAction) KeyPrefix() string {
	switch a {
	case StorageActionUploadURL:
		return "sources"
	case StorageActionDownloadURL:
		return "results"
	default:
		return ""
	}
}

// ParseStorageAction разбирает параметр пути; неизвестное значение дает StorageActionUnknown
func ParseStorageAction(s string) StorageAction {
	switch s {
	case "upload-url":
		return StorageActionUploadURL
	case "download-url":
		return StorageActionDownloadURL
	default:
		return StorageActionUnknown
	}
}

// SignUpAction - замкнутое множество действий маршрута auth/sign-up/{action}
type SignUpAction int

const (
	SignUpActionUnknown SignUpAction = iota
	SignUpActionCreate
	SignUpActionConfirm
)

// String возвращает значение параметра пути
func (a SignUpAction) String() string {
	switch a {
	case SignUpActionCreate:
		return "create"
	case SignUpActionConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// ParseSignUpAction разбирает параметр пути; неизвестное значение дает SignUpActionUnknown
func ParseSignUpAction(s string) SignUpAction {
	switch s {
	case "create":
		return SignUpActionCreate
	case "confirm":
		return SignUpActionConfirm
	default:
		return SignUpActionUnknown
	}
}
