package config

type Config struct {
	System struct {
		IsProd                bool   // 是否为生产环境
		Listen                string // 监听地址
		DBConnectionString    string // Postgres 数据库的连接字符串
		RedisConnectionString string // Redis 数据库的连接字符串
	}
	Security struct {
		SignatureSecretKey string // 签名密钥，用于签发 JWT ，更新会导致旧有会话失效
		AdminPassword      string // 初始管理员密码，为空则不创建初始管理员
	}
	Media Media
}

// Media 封面与头像的存储位置，设置了 S3Bucket 时使用 S3 ，否则使用本地目录
type Media struct {
	Root string // 本地存储根目录

	S3Bucket       string
	S3Endpoint     string // 为空则使用 AWS 默认地址
	S3Region       string
	S3AccessKey    string
	S3SecretKey    string
	S3UsePathStyle bool // MinIO 等兼容服务需要
}
