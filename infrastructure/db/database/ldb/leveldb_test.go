package ldb

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"strings"
	"testing"

	"github.com/crownplatform/crownwire/infrastructure/db/database"
)

func prepareDatabaseForTest(t *testing.T, testName string) (ldb *LevelDB, teardownFunc func()) {
	// Create a temp db to run tests against
	path, err := ioutil.TempDir("", testName)
	if err != nil {
		t.Fatalf("%s: TempDir unexpectedly "+
			"failed: %s", testName, err)
	}
	ldb, err = NewLevelDB(path, 8)
	if err != nil {
		t.Fatalf("%s: NewLevelDB unexpectedly "+
			"failed: %s", testName, err)
	}
	teardownFunc = func() {
		err = ldb.Close()
		if err != nil {
			t.Fatalf("%s: Close unexpectedly "+
				"failed: %s", testName, err)
		}
		_ = os.RemoveAll(path)
	}
	return ldb, teardownFunc
}

func TestLevelDBSanity(t *testing.T) {
	ldb, teardownFunc := prepareDatabaseForTest(t, "TestLevelDBSanity")
	defer teardownFunc()

	// Put something into the db
	key := database.MakeBucket([]byte("tx")).Key([]byte("key"))
	putData := []byte("Hello world!")
	err := ldb.Put(key, putData)
	if err != nil {
		t.Fatalf("TestLevelDBSanity: Put returned "+
			"unexpected error: %s", err)
	}

	exists, err := ldb.Has(key)
	if err != nil || !exists {
		t.Fatalf("TestLevelDBSanity: Has returned %t, %v", exists, err)
	}

	// Get from the key previously put to
	getData, err := ldb.Get(key)
	if err != nil {
		t.Fatalf("TestLevelDBSanity: Get returned "+
			"unexpected error: %s", err)
	}

	// Make sure that the put data and the get data are equal
	if !bytes.Equal(getData, putData) {
		t.Fatalf("TestLevelDBSanity: get data and "+
			"put data are not equal. Put: %s, got: %s",
			string(putData), string(getData))
	}

	err = ldb.Delete(key)
	if err != nil {
		t.Fatalf("TestLevelDBSanity: Delete returned "+
			"unexpected error: %s", err)
	}
	_, err = ldb.Get(key)
	if !database.IsNotFoundError(err) {
		t.Fatalf("TestLevelDBSanity: Get after Delete "+
			"returned %v, want ErrNotFound", err)
	}
	exists, err = ldb.Has(key)
	if err != nil || exists {
		t.Fatalf("TestLevelDBSanity: Has after Delete returned %t, %v", exists, err)
	}

	// Deleting a missing key is not an error
	err = ldb.Delete(key)
	if err != nil {
		t.Fatalf("TestLevelDBSanity: second Delete returned "+
			"unexpected error: %s", err)
	}
}

func TestLevelDBReopen(t *testing.T) {
	path, err := ioutil.TempDir("", "TestLevelDBReopen")
	if err != nil {
		t.Fatalf("TempDir: %s", err)
	}
	defer os.RemoveAll(path)

	key := database.MakeBucket([]byte("tx")).Key([]byte("persisted"))
	ldb, err := NewLevelDB(path, 8)
	if err != nil {
		t.Fatalf("NewLevelDB: %s", err)
	}
	if err := ldb.Put(key, []byte("value")); err != nil {
		t.Fatalf("Put: %s", err)
	}
	if err := ldb.Close(); err != nil {
		t.Fatalf("Close: %s", err)
	}

	ldb, err = NewLevelDB(path, 8)
	if err != nil {
		t.Fatalf("NewLevelDB after reopen: %s", err)
	}
	defer ldb.Close()
	value, err := ldb.Get(key)
	if err != nil || string(value) != "value" {
		t.Fatalf("Get after reopen: got %q, %v", value, err)
	}
}

func recoverFromClosedCursorPanic(t *testing.T, testName string) {
	panicErr := recover()
	if panicErr == nil {
		t.Fatalf("%s: cursor unexpectedly "+
			"didn't panic after being closed", testName)
	}
	expectedPanicErr := "closed cursor"
	if !strings.Contains(fmt.Sprintf("%v", panicErr), expectedPanicErr) {
		t.Fatalf("%s: cursor panicked "+
			"with wrong message. Want: %v, got: %s",
			testName, expectedPanicErr, panicErr)
	}
}

// TestCursorSanity validates typical cursor usage, including opening a
// cursor over some existing data, seeking over that data, and getting some
// keys/values out of the cursor.
func TestCursorSanity(t *testing.T) {
	ldb, teardownFunc := prepareDatabaseForTest(t, "TestCursorSanity")
	defer teardownFunc()

	// Write some data to the database, plus a key in a neighbouring bucket
	// that must not show up in the cursor
	bucket := database.MakeBucket([]byte("bucket"))
	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("key%d", i)
		value := fmt.Sprintf("value%d", i)
		err := ldb.Put(bucket.Key([]byte(key)), []byte(value))
		if err != nil {
			t.Fatalf("TestCursorSanity: Put "+
				"unexpectedly failed: %s", err)
		}
	}
	err := ldb.Put(database.MakeBucket([]byte("bucket2")).Key([]byte("key0")), []byte("other"))
	if err != nil {
		t.Fatalf("TestCursorSanity: Put unexpectedly failed: %s", err)
	}

	cursor, err := ldb.Cursor(bucket)
	if err != nil {
		t.Fatalf("TestCursorSanity: ldb.Cursor "+
			"unexpectedly failed: %s", err)
	}
	defer func() {
		err := cursor.Close()
		if err != nil {
			t.Fatalf("TestCursorSanity: Close "+
				"unexpectedly failed: %s", err)
		}
	}()

	count := 0
	for ok := cursor.First(); ok; ok = cursor.Next() {
		key, err := cursor.Key()
		if err != nil {
			t.Fatalf("TestCursorSanity: Key unexpectedly failed: %s", err)
		}
		value, err := cursor.Value()
		if err != nil {
			t.Fatalf("TestCursorSanity: Value unexpectedly failed: %s", err)
		}
		wantKey := fmt.Sprintf("key%d", count)
		wantValue := fmt.Sprintf("value%d", count)
		if string(key.Suffix()) != wantKey || string(value) != wantValue {
			t.Fatalf("TestCursorSanity: entry %d is %s=%s, want %s=%s",
				count, key.Suffix(), value, wantKey, wantValue)
		}
		count++
	}
	if count != 10 {
		t.Fatalf("TestCursorSanity: iterated %d entries, want 10", count)
	}

	// Key and Value fail once the cursor is exhausted
	if _, err := cursor.Key(); !database.IsNotFoundError(err) {
		t.Fatalf("TestCursorSanity: Key of an exhausted cursor returned %v", err)
	}
	if _, err := cursor.Value(); !database.IsNotFoundError(err) {
		t.Fatalf("TestCursorSanity: Value of an exhausted cursor returned %v", err)
	}

	// Seek to an existing key and a missing one
	err = cursor.Seek(bucket.Key([]byte("key7")))
	if err != nil {
		t.Fatalf("TestCursorSanity: Seek unexpectedly failed: %s", err)
	}
	value, err := cursor.Value()
	if err != nil || string(value) != "value7" {
		t.Fatalf("TestCursorSanity: Value after Seek returned %s, %v", value, err)
	}
	err = cursor.Seek(bucket.Key([]byte("key99")))
	if !database.IsNotFoundError(err) {
		t.Fatalf("TestCursorSanity: Seek to a missing key returned %v", err)
	}
}

func TestCursorCloseErrors(t *testing.T) {
	ldb, teardownFunc := prepareDatabaseForTest(t, "TestCursorCloseErrors")
	defer teardownFunc()

	bucket := database.MakeBucket([]byte("bucket"))
	cursor, err := ldb.Cursor(bucket)
	if err != nil {
		t.Fatalf("TestCursorCloseErrors: ldb.Cursor "+
			"unexpectedly failed: %s", err)
	}
	err = cursor.Close()
	if err != nil {
		t.Fatalf("TestCursorCloseErrors: Close "+
			"unexpectedly failed: %s", err)
	}

	if err := cursor.Close(); err == nil {
		t.Fatalf("TestCursorCloseErrors: second Close unexpectedly succeeded")
	}
	if err := cursor.Seek(bucket.Key([]byte("key"))); err == nil {
		t.Fatalf("TestCursorCloseErrors: Seek on a closed cursor unexpectedly succeeded")
	}
	if _, err := cursor.Key(); err == nil {
		t.Fatalf("TestCursorCloseErrors: Key on a closed cursor unexpectedly succeeded")
	}
	if _, err := cursor.Value(); err == nil {
		t.Fatalf("TestCursorCloseErrors: Value on a closed cursor unexpectedly succeeded")
	}

	func() {
		defer recoverFromClosedCursorPanic(t, "TestCursorCloseErrors: Next")
		cursor.Next()
	}()
	func() {
		defer recoverFromClosedCursorPanic(t, "TestCursorCloseErrors: First")
		cursor.First()
	}()
}
