package store

import (
	"bytes"
	"encoding/gob"
	"net/http"
	"time"

	"techstore/config"

	"github.com/boltdb/bolt"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

var sessionsBucket = []byte("sessions")

// BoltSessionStore keeps session data in a local bolt file, keyed by a
// generated session id. The cookie holds only the signed id.
type BoltSessionStore struct {
	boltdb  *bolt.DB
	codecs  []securecookie.Codec
	options *sessions.Options
}

type sessionRecord struct {
	Values    map[interface{}]interface{}
	ExpiresAt time.Time
}

func NewBoltSessionStore(conf config.Sessions) (*BoltSessionStore, error) {
	s := &BoltSessionStore{
		codecs:  securecookie.CodecsFromPairs(KeyPairs(conf)...),
		options: sessionOptions(conf),
	}
	for _, codec := range s.codecs {
		if cookie, valid := codec.(*securecookie.SecureCookie); valid {
			cookie.MaxAge(int(conf.MaxAge))
		}
	}

	var err error
	s.boltdb, err = bolt.Open(conf.File, 0600, nil)
	if err != nil {
		return nil, err
	}

	tx, err := s.boltdb.Begin(true)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()
	if _, err = tx.CreateBucketIfNotExists(sessionsBucket); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return s, nil
}

// Get returns the cached session for the request, creating it on first use.
func (s *BoltSessionStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New loads the named session from the request cookie, falling back to a
// fresh session when the cookie is missing, invalid or expired.
func (s *BoltSessionStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	options := *s.options
	session.Options = &options
	session.IsNew = true

	cookie, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}
	if err := securecookie.DecodeMulti(name, cookie.Value, &session.ID, s.codecs...); err != nil {
		session.ID = ""
		return session, nil
	}

	record, err := s.load(session.ID)
	if err != nil {
		return session, err
	}
	if record != nil {
		session.Values = record.Values
		session.IsNew = false
	}

	return session, nil
}

// Save writes the session record to bolt and the signed session id to the
// cookie. A negative max age deletes both.
func (s *BoltSessionStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.delete(session.ID); err != nil {
				return err
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = uuid.New().String()
	}

	record := &sessionRecord{Values: session.Values}
	if session.Options.MaxAge > 0 {
		record.ExpiresAt = time.Now().Add(time.Duration(session.Options.MaxAge) * time.Second)
	}
	if err := s.save(session.ID, record); err != nil {
		return err
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.codecs...)
	if err != nil {
		return err
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))

	return nil
}

func (s *BoltSessionStore) load(id string) (*sessionRecord, error) {
	tx, err := s.boltdb.Begin(false)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	value := tx.Bucket(sessionsBucket).Get([]byte(id))
	if value == nil {
		return nil, nil
	}

	record := &sessionRecord{}
	if err := gob.NewDecoder(bytes.NewReader(value)).Decode(record); err != nil {
		return nil, err
	}
	if expired(record, time.Now()) {
		return nil, nil
	}

	return record, nil
}

func (s *BoltSessionStore) save(id string, record *sessionRecord) error {
	var value bytes.Buffer
	if err := gob.NewEncoder(&value).Encode(record); err != nil {
		return err
	}

	tx, err := s.boltdb.Begin(true)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.Bucket(sessionsBucket).Put([]byte(id), value.Bytes()); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *BoltSessionStore) delete(id string) error {
	tx, err := s.boltdb.Begin(true)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.Bucket(sessionsBucket).Delete([]byte(id)); err != nil {
		return err
	}

	return tx.Commit()
}

// Sweep deletes expired session records, returning how many went. Records
// that no longer decode are treated as expired.
func (s *BoltSessionStore) Sweep() (int64, error) {
	tx, err := s.boltdb.Begin(true)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	bucket := tx.Bucket(sessionsBucket)
	now := time.Now()

	var stale [][]byte
	cursor := bucket.Cursor()
	for key, value := cursor.First(); key != nil; key, value = cursor.Next() {
		record := &sessionRecord{}
		if err := gob.NewDecoder(bytes.NewReader(value)).Decode(record); err != nil {
			stale = append(stale, append([]byte(nil), key...))
			continue
		}
		if expired(record, now) {
			stale = append(stale, append([]byte(nil), key...))
		}
	}
	for _, key := range stale {
		if err := bucket.Delete(key); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return int64(len(stale)), nil
}

func (s *BoltSessionStore) Shutdown() {
	if s.boltdb != nil {
		s.boltdb.Close()
	}
}

func expired(record *sessionRecord, now time.Time) bool {
	return !record.ExpiresAt.IsZero() && record.ExpiresAt.Before(now)
}
