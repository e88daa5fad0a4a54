package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/dgraph-io/badger/v4"
)

func stationsKey(userID int64) []byte {
	return []byte(fmt.Sprintf("stations:%d", userID))
}

func messageKey(userID int64) []byte {
	return []byte(fmt.Sprintf("message:%d", userID))
}

// ---- favorite stops ----

func getStations(userID int64) ([]Station, error) {
	var stations []Station
	key := stationsKey(userID)

	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stations)
		})
	})

	if err == badger.ErrKeyNotFound {
		return nil, nil
	} else if err != nil {
		log.Println("Error: could not read stations from DB: ", err)
		return nil, err
	}

	return stations, nil
}

// addStation saves a favorite stop. A station with the same stop number is
// replaced, so a user holds at most one entry per stop.
func addStation(userID int64, stopNumber, name string) error {
	stations, err := getStations(userID)
	if err != nil {
		return err
	}

	kept := make([]Station, 0, len(stations)+1)
	for _, s := range stations {
		if s.StopNumber != stopNumber {
			kept = append(kept, s)
		}
	}
	kept = append(kept, Station{StopNumber: stopNumber, Name: name})

	jsn, err := json.Marshal(kept)
	if err != nil {
		log.Println("Error: marshaling stations: ", err)
		return err
	}

	err = db.Update(func(txn *badger.Txn) error {
		return txn.Set(stationsKey(userID), jsn)
	})
	if err != nil {
		log.Println("Error: could not store stations in DB: ", err)
		return err
	}

	return nil
}

func deleteStation(userID int64, stopNumber string) error {
	stations, err := getStations(userID)
	if err != nil {
		return err
	}

	kept := make([]Station, 0, len(stations))
	for _, s := range stations {
		if s.StopNumber != stopNumber {
			kept = append(kept, s)
		}
	}

	jsn, err := json.Marshal(kept)
	if err != nil {
		log.Println("Error: marshaling stations: ", err)
		return err
	}

	err = db.Update(func(txn *badger.Txn) error {
		return txn.Set(stationsKey(userID), jsn)
	})
	if err != nil {
		log.Println("Error: could not delete station from DB: ", err)
		return err
	}

	return nil
}

// ---- active message pointer ----
// At most one per user. Set overwrites, so the pointer is a plain upsert.

func setMessageID(userID int64, messageID int) error {
	jsn, err := json.Marshal(messageID)
	if err != nil {
		return err
	}

	err = db.Update(func(txn *badger.Txn) error {
		return txn.Set(messageKey(userID), jsn)
	})
	if err != nil {
		log.Println("Error: could not store message id in DB: ", err)
		return err
	}

	return nil
}

func getMessageID(userID int64) (int, bool, error) {
	var messageID int
	key := messageKey(userID)

	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &messageID)
		})
	})

	if err == badger.ErrKeyNotFound {
		return 0, false, nil
	} else if err != nil {
		log.Println("Error: could not read message id from DB: ", err)
		return 0, false, err
	}

	return messageID, true, nil
}

func deleteMessageID(userID int64) error {
	err := db.Update(func(txn *badger.Txn) error {
		return txn.Delete(messageKey(userID))
	})
	if err != nil {
		log.Println("Error: could not delete message id from DB: ", err)
		return err
	}

	return nil
}
