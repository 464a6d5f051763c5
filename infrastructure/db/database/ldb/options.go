package ldb

import "github.com/syndtr/goleveldb/leveldb/opt"

var (
	defaultOptions = opt.Options{
		Compression:            opt.NoCompression,
		DisableSeeksCompaction: true,
	}

	// Options is a function that returns a leveldb
	// opt.Options struct for opening a database.
	// It's defined as a variable for the sake of testing.
	Options = func(cacheSizeMiB int) *opt.Options {
		options := defaultOptions
		options.BlockCacheCapacity = cacheSizeMiB * opt.MiB
		options.WriteBuffer = cacheSizeMiB / 2 * opt.MiB
		return &options
	}
)
