// Package nbt writes Go values in Minecraft's Named Binary Tag format and reads them back through go-mc.
package nbt

const (
	TagEnd byte = iota
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
	TagLongArray
)
