package main

import (
	"fmt"
	"os"

	"github.com/crownplatform/crownwire/domain/txstore"
	"github.com/crownplatform/crownwire/infrastructure/db/database/ldb"
	"github.com/crownplatform/crownwire/wire"
	"github.com/pkg/errors"
)

func openStore(flags *DBFlags) (*txstore.TxStore, func(), error) {
	dbPath := flags.resolvedDBPath()
	db, err := ldb.NewLevelDB(dbPath, defaultCacheSizeMiB)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "error opening the transaction database at %s", dbPath)
	}
	closeDB := func() {
		err := db.Close()
		if err != nil {
			log.Errorf("Error closing the transaction database: %s", err)
		}
	}
	return txstore.New(db, nil), closeDB, nil
}

func store(conf *storeConfig) error {
	raw, err := readTransactionHex(conf.Args.Transaction)
	if err != nil {
		return err
	}

	txStore, closeDB, err := openStore(&conf.DBFlags)
	if err != nil {
		return err
	}
	defer closeDB()

	hash, err := txStore.PutRaw(raw)
	if err != nil {
		return errors.Wrap(err, "error storing the transaction")
	}
	fmt.Println(hash)
	return nil
}

func show(conf *showConfig) error {
	hash, err := wire.NewHashFromStr(conf.Args.Hash)
	if err != nil {
		return errors.Wrap(err, "error parsing the transaction id")
	}

	txStore, closeDB, err := openStore(&conf.DBFlags)
	if err != nil {
		return err
	}
	defer closeDB()

	tx, err := txStore.Get(hash)
	if err != nil {
		return err
	}
	return printTransaction(os.Stdout, tx, conf.Dump)
}

func list(conf *listConfig) error {
	txStore, closeDB, err := openStore(&conf.DBFlags)
	if err != nil {
		return err
	}
	defer closeDB()

	return txStore.ForEach(func(hash wire.Hash, tx *wire.MsgTx) error {
		_, err := fmt.Printf("%s version=%d type=%d\n", hash, tx.Version, tx.TxType)
		return err
	})
}
