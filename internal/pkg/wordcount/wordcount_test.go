package wordcount

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCount(t *testing.T) {
	Convey("统计正文字数", t, func() {
		Convey("普通内容按空白分词", func() {
			So(Count("a b c"), ShouldEqual, 3)
			So(Count("It was a dark and stormy night."), ShouldEqual, 7)
		})

		Convey("空内容返回0", func() {
			So(Count(""), ShouldEqual, 0)
		})

		Convey("纯空白返回0", func() {
			So(Count("   \n\t  "), ShouldEqual, 0)
		})

		Convey("连续空白只算一次分隔", func() {
			So(Count("hello    world"), ShouldEqual, 2)
			So(Count("  leading and trailing  "), ShouldEqual, 3)
		})

		Convey("换行同样作为分隔符", func() {
			So(Count("line one\nline two\n"), ShouldEqual, 4)
		})
	})
}

func TestTotal(t *testing.T) {
	Convey("汇总多段正文字数", t, func() {
		So(Total(), ShouldEqual, 0)
		So(Total("a b", "", "c d e"), ShouldEqual, 5)
	})
}

func TestDefaultChapterTitle(t *testing.T) {
	Convey("默认章节标题", t, func() {
		So(DefaultChapterTitle(1), ShouldEqual, "Chapter 1")
		So(DefaultChapterTitle(42), ShouldEqual, "Chapter 42")
	})
}
