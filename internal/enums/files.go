package enums

const (
	FILE_BUCKET_GRAM_PICTURES = "gram-pictures"
	FILE_PREFIX_GRAM_PICTURES = "grams"
	MAX_PICTURE_SIZE          = 10 << 20
)

var AllowedPictureTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}
