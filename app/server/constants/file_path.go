package constants

// 存储中的目录
const (
	CoverPathPrefix  = "covers/"
	AvatarPathPrefix = "profile_pics/"
)

// 图片处理后的最大尺寸
const (
	AvatarMaxWidth  = 300
	AvatarMaxHeight = 300
	CoverMaxWidth   = 300
	CoverMaxHeight  = 400
)

// 上传文件大小限制
const MaxUploadSize = 8 << 20
