package keys

import (
	"io/ioutil"
	"os"
	"path"
	"reflect"
	"testing"
)

func TestSimpleKeyfile(t *testing.T) {
	os.Mkdir("test_data", os.ModeDir|0700)
	dir, err := ioutil.TempDir("test_data", "keys")
	if err != nil {
		t.Fatalf("err: %v ", err)
	}
	defer os.RemoveAll(dir)

	simpleKeyfile := NewSimpleKeyfile(path.Join(dir, "priv_key"))

	// Try a read, should get nothing
	key, err := simpleKeyfile.ReadKey()
	if err == nil {
		t.Fatalf("ReadKey should generate an error")
	}
	if key != nil {
		t.Fatalf("key is not nil")
	}

	key, _ = GenerateECDSAKey()

	if err := simpleKeyfile.WriteKey(key); err != nil {
		t.Fatalf("err: %v", err)
	}

	nKey, err := simpleKeyfile.ReadKey()
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if !reflect.DeepEqual(*nKey, *key) {
		t.Fatalf("Keys do not match")
	}
}

func TestPrivateKeyRoundTrip(t *testing.T) {
	key, err := GenerateECDSAKey()
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	parsed, err := ParsePrivateKey(DumpPrivateKey(key))
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if parsed.D.Cmp(key.D) != 0 {
		t.Fatalf("parsed key does not match")
	}
	if parsed.PublicKey.X.Cmp(key.PublicKey.X) != 0 ||
		parsed.PublicKey.Y.Cmp(key.PublicKey.Y) != 0 {
		t.Fatalf("parsed public key does not match")
	}
}

func TestPublicKeyRoundTrip(t *testing.T) {
	key, _ := GenerateECDSAKey()

	pubBytes := FromPublicKey(&key.PublicKey)

	pub := ToPublicKey(pubBytes)
	if pub.X.Cmp(key.PublicKey.X) != 0 || pub.Y.Cmp(key.PublicKey.Y) != 0 {
		t.Fatalf("public key does not survive the round trip")
	}

	if PublicKeyHex(&key.PublicKey) == "" {
		t.Fatalf("hex representation should not be empty")
	}
}
