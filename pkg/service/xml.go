package service

import "github.com/beevik/etree"

// IdentityDocument builds the handshake identity frame body:
//
//	<?xml version="1.0"?><service name="NAME"/>
//
// The service sends this unconditionally as its first message on every
// connection.
func IdentityDocument(name string) []byte {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0"`)
	doc.CreateElement("service").CreateAttr("name", name)
	return mustSerialize(doc)
}

// DeviceListDocument builds the device key-to-id tree sent after the
// handshake, enumerating the harness's single fake device:
//
//	<?xml version="1.0"?><node id="default" key="0"><node id="Node" key="1"/></node>
func DeviceListDocument() []byte {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0"`)
	root := doc.CreateElement("node")
	root.CreateAttr("id", "default")
	root.CreateAttr("key", "0")
	leaf := root.CreateElement("node")
	leaf.CreateAttr("id", "Node")
	leaf.CreateAttr("key", "1")
	return mustSerialize(doc)
}

func mustSerialize(doc *etree.Document) []byte {
	out, err := doc.WriteToBytes()
	if err != nil {
		// Serialization of an in-memory document cannot fail.
		panic(err)
	}
	return out
}
