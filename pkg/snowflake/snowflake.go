package snowflake

import "github.com/bwmarrin/snowflake"

var node *snowflake.Node

func init() {
	node, _ = snowflake.NewNode(1)
}

// GenID 雪花ID整体随时间递增，弹幕按ID排序即按创建顺序排序
func GenID() int64 {
	return node.Generate().Int64()
}
