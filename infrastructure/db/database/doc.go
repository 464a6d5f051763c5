/*
Package database defines the key-value store interface used to persist
transactions, together with the bucketed key layout shared by every
implementation.

Keys are grouped into buckets. A bucket is a path of byte-slice segments
joined with "/", and a key is a bucket path followed by a suffix:

	bucket := database.MakeBucket([]byte("tx"))
	key := bucket.Key(txHash[:])

Cursors iterate over the keys of a single bucket in ascending byte order.
*/
package database
